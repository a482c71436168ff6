package galeri24

import (
	"errors"
	"testing"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

func wrapPayload(payload string) []byte {
	return []byte(`<!DOCTYPE html><html><head><title>Harga Emas</title>` +
		`<script id="__NUXT_DATA__" type="application/json">` + payload + `</script>` +
		`</head><body><div id="__nuxt"></div></body></html>`)
}

// A miniature Nuxt payload: a flat array where price objects hold
// their field values as indices into the same array.
const wellFormedPayload = `[
	"2026-08-27",
	"ANTAM",
	"UBS",
	"1.850.000",
	"1.750.000",
	"0.5",
	"1",
	"950.000",
	"920.000",
	"1.830.000",
	{"id":900,"vendorName":1,"denomination":6,"sellingPrice":3,"buybackPrice":4,"price":3,"date":0,"status":901},
	{"id":902,"vendorName":1,"denomination":5,"sellingPrice":7,"buybackPrice":8,"price":7,"date":0,"status":901},
	{"id":903,"vendorName":2,"denomination":6,"sellingPrice":9,"buybackPrice":4,"price":9,"date":0,"status":901}
]`

func TestParse_WellFormedPayload(t *testing.T) {
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	snap, err := Parse(wrapPayload(wellFormedPayload), now)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(snap.Records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(snap.Records))
	}
	if snap.Source != SourceName {
		t.Errorf("Expected source %q, got %q", SourceName, snap.Source)
	}
	if snap.ID == "" {
		t.Error("Expected a snapshot ID")
	}
	if !snap.ScrapedAt.Equal(now) {
		t.Errorf("Expected scrapedAt %v, got %v", now, snap.ScrapedAt)
	}

	// Sorted by vendor then weight: ANTAM 0.5, ANTAM 1, UBS 1.
	first := snap.Records[0]
	if first.Vendor != "ANTAM" || first.Weight != 0.5 {
		t.Fatalf("Expected ANTAM 0.5g first, got %s %gg", first.Vendor, first.Weight)
	}

	second := snap.Records[1]
	if second.Vendor != "ANTAM" || second.Weight != 1 {
		t.Fatalf("Expected ANTAM 1g second, got %s %gg", second.Vendor, second.Weight)
	}
	if second.SellingPrice == nil || *second.SellingPrice != 1850000 {
		t.Errorf("Expected selling price 1850000, got %v", second.SellingPrice)
	}
	if second.BuybackPrice == nil || *second.BuybackPrice != 1750000 {
		t.Errorf("Expected buyback price 1750000, got %v", second.BuybackPrice)
	}
	if second.Date != "2026-08-27" {
		t.Errorf("Expected page date 2026-08-27, got %q", second.Date)
	}
	if second.Unit != "gram" {
		t.Errorf("Expected unit gram, got %q", second.Unit)
	}

	for _, rec := range snap.Records {
		if rec.SellingPrice != nil && *rec.SellingPrice < 0 {
			t.Errorf("Negative selling price for %s %gg", rec.Vendor, rec.Weight)
		}
	}
}

func TestParse_MissingPayload(t *testing.T) {
	raw := []byte(`<html><head></head><body><p>maintenance</p></body></html>`)

	_, err := Parse(raw, time.Now())

	var parseErr *models.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError for missing payload, got %v", err)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse(wrapPayload(`{"not":"an array`), time.Now())

	var parseErr *models.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError for malformed JSON, got %v", err)
	}
}

func TestParse_NoVendorSections(t *testing.T) {
	// Valid payload shape but nothing matching the price schema.
	_, err := Parse(wrapPayload(`["just", "strings", 1, 2, {"unrelated": 0}]`), time.Now())

	var parseErr *models.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError for unrecognized layout, got %v", err)
	}
}

func TestParse_SkipsUnparseableSections(t *testing.T) {
	// Second object has a broken denomination; it is skipped and
	// counted, not fatal.
	payload := `[
		"2026-08-27",
		"ANTAM",
		"1.850.000",
		"not-a-weight",
		"1",
		{"vendorName":1,"denomination":4,"sellingPrice":2,"price":2,"date":0},
		{"vendorName":1,"denomination":3,"sellingPrice":2,"price":2,"date":0}
	]`

	snap, err := Parse(wrapPayload(payload), time.Now())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(snap.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(snap.Records))
	}
	if snap.Warnings != 1 {
		t.Errorf("Expected 1 warning, got %d", snap.Warnings)
	}
}

func TestParse_DeduplicatesVendorWeightPairs(t *testing.T) {
	payload := `[
		"2026-08-27",
		"ANTAM",
		"1.850.000",
		"1.830.000",
		"1",
		{"vendorName":1,"denomination":4,"sellingPrice":2,"price":2,"date":0},
		{"vendorName":1,"denomination":4,"sellingPrice":3,"price":3,"date":0}
	]`

	snap, err := Parse(wrapPayload(payload), time.Now())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(snap.Records) != 1 {
		t.Fatalf("Expected duplicate (vendor, weight) collapsed to 1 record, got %d", len(snap.Records))
	}
	if *snap.Records[0].SellingPrice != 1850000 {
		t.Errorf("Expected first occurrence kept, got %d", *snap.Records[0].SellingPrice)
	}
}

func TestParse_MissingDateFallsBackToAcquisitionDate(t *testing.T) {
	payload := `[
		"ANTAM",
		"1.850.000",
		"1",
		{"vendorName":0,"denomination":2,"sellingPrice":1,"price":1,"status":900}
	]`
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	snap, err := Parse(wrapPayload(payload), now)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if snap.Records[0].Date != "2026-08-27" {
		t.Errorf("Expected acquisition date fallback, got %q", snap.Records[0].Date)
	}
}

func TestParsePriceCoercion(t *testing.T) {
	cases := []struct {
		in   interface{}
		want *int64
	}{
		{"1.850.000", int64p(1850000)},
		{"Rp 1,850,000", int64p(1850000)},
		{float64(920000), int64p(920000)},
		{"", nil},
		{"harga", nil},
		{nil, nil},
	}

	for _, tc := range cases {
		got := parsePrice(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("parsePrice(%v) = %d, want nil", tc.in, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Errorf("parsePrice(%v) = %v, want %d", tc.in, got, *tc.want)
		}
	}
}

func int64p(v int64) *int64 { return &v }
