package galeri24

import (
	"bytes"
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// The page is a Nuxt 3 app; its data lives in a flat JSON array
// embedded in a script tag. Objects in that array hold their field
// values as integer indices into the same array.
var goldPriceFields = map[string]struct{}{
	"id":           {},
	"price":        {},
	"sellingPrice": {},
	"buybackPrice": {},
	"denomination": {},
	"vendorName":   {},
	"date":         {},
	"status":       {},
}

var nonDigit = regexp.MustCompile(`\D`)

// Parse extracts gold price records from the raw page content. Pure:
// no network access. Vendor entries whose figures cannot be parsed
// are skipped and counted as warnings; zero extracted records is a
// ParseError, the contract callers use to tell "page structure
// changed" from "transient failure".
func Parse(raw []byte, now time.Time) (*models.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &models.ParseError{Reason: "unreadable document: " + err.Error()}
	}

	payload := doc.Find(`script#__NUXT_DATA__`).First().Text()
	if strings.TrimSpace(payload) == "" {
		return nil, &models.ParseError{Reason: "missing __NUXT_DATA__ payload"}
	}

	var data []interface{}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, &models.ParseError{Reason: "malformed __NUXT_DATA__ JSON: " + err.Error()}
	}

	records, warnings := extractRecords(data, now)
	if len(records) == 0 {
		return nil, &models.ParseError{Reason: "no recognizable vendor sections"}
	}

	return &models.Snapshot{
		ID:        uuid.NewString(),
		Source:    SourceName,
		ScrapedAt: now,
		Records:   records,
		Warnings:  warnings,
	}, nil
}

func extractRecords(data []interface{}, now time.Time) ([]models.GoldPrice, int) {
	fallbackDate := now.Format("2006-01-02")

	var records []models.GoldPrice
	warnings := 0
	seen := make(map[string]struct{})

	for _, item := range data {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		matching := 0
		for key := range obj {
			if _, ok := goldPriceFields[key]; ok {
				matching++
			}
		}
		if matching < 4 {
			continue
		}

		resolved := resolveRefs(obj, data)

		vendor, _ := resolved["vendorName"].(string)
		if len(strings.TrimSpace(vendor)) < 2 {
			warnings++
			continue
		}
		vendor = strings.TrimSpace(vendor)

		weight := parseWeight(resolved["denomination"])
		if weight <= 0 {
			warnings++
			continue
		}

		selling := parsePrice(resolved["sellingPrice"])
		buyback := parsePrice(resolved["buybackPrice"])
		base := parsePrice(resolved["price"])
		if selling == nil && buyback == nil && base == nil {
			warnings++
			continue
		}

		date, _ := resolved["date"].(string)
		if date == "" {
			date = fallbackDate
		}

		key := vendor + "|" + strconv.FormatFloat(weight, 'f', -1, 64)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		records = append(records, models.GoldPrice{
			Vendor:       vendor,
			Weight:       weight,
			Unit:         "gram",
			SellingPrice: selling,
			BuybackPrice: buyback,
			Price:        base,
			Date:         date,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Vendor != records[j].Vendor {
			return records[i].Vendor < records[j].Vendor
		}
		return records[i].Weight < records[j].Weight
	})

	return records, warnings
}

// resolveRefs dereferences integer field values that point at other
// payload indices; anything out of range stays as-is.
func resolveRefs(obj map[string]interface{}, data []interface{}) map[string]interface{} {
	resolved := make(map[string]interface{}, len(obj))
	for key, val := range obj {
		if ref, ok := val.(float64); ok && ref == float64(int(ref)) {
			idx := int(ref)
			if idx >= 0 && idx < len(data) {
				resolved[key] = data[idx]
				continue
			}
		}
		resolved[key] = val
	}
	return resolved
}

// parsePrice coerces a textual or numeric price into integer rupiah,
// stripping currency symbols and thousands separators. Nil when the
// value is absent or carries no digits.
func parsePrice(v interface{}) *int64 {
	switch x := v.(type) {
	case float64:
		n := int64(x)
		if n < 0 {
			return nil
		}
		return &n
	case string:
		cleaned := nonDigit.ReplaceAllString(x, "")
		if cleaned == "" {
			return nil
		}
		n, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

// parseWeight coerces a denomination into grams; 0 means unparseable.
func parseWeight(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err == nil {
			return f
		}
	}
	return 0
}
