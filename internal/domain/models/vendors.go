package models

import "strings"

// Vendor is a gold retail brand exposed through the API.
type Vendor struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// vendorAliases maps a query slug to the brand names it may appear
// under on the upstream page.
var vendorAliases = map[string][]string{
	"antam":    {"ANTAM"},
	"ubs":      {"UBS"},
	"galeri24": {"GALERI 24", "GALERI24"},
	"dinar":    {"DINAR G24", "DINAR"},
	"baby":     {"BABY GALERI 24", "BABY GALERI24"},
	"batik":    {"BATIK", "BATIK SERIES"},
}

// AvailableVendors returns the fixed vendor catalog.
func AvailableVendors() []Vendor {
	return []Vendor{
		{Name: "ANTAM", Slug: "antam"},
		{Name: "UBS", Slug: "ubs"},
		{Name: "GALERI 24", Slug: "galeri24"},
		{Name: "DINAR G24", Slug: "dinar"},
		{Name: "BABY GALERI 24", Slug: "baby"},
	}
}

// VendorMatches reports whether a record's vendor name belongs to the
// brand identified by slug. Unknown slugs fall back to a substring
// match on the slug itself.
func VendorMatches(slug, vendorName string) bool {
	key := strings.ToLower(strings.TrimSpace(slug))
	names, ok := vendorAliases[key]
	if !ok {
		names = []string{slug}
	}
	upper := strings.ToUpper(vendorName)
	for _, name := range names {
		if strings.Contains(upper, strings.ToUpper(name)) {
			return true
		}
	}
	return false
}
