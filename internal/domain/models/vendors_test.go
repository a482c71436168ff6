package models

import "testing"

func TestVendorMatches(t *testing.T) {
	cases := []struct {
		slug   string
		vendor string
		want   bool
	}{
		{"antam", "ANTAM", true},
		{"antam", "antam", true},
		{" ANTAM ", "ANTAM", true},
		{"antam", "UBS", false},
		{"galeri24", "GALERI 24", true},
		{"galeri24", "GALERI24", true},
		{"dinar", "DINAR G24", true},
		{"baby", "BABY GALERI 24", true},
		{"lotus", "LOTUS ARCHI", true}, // unknown slug, substring fallback
		{"lotus", "ANTAM", false},
	}

	for _, tc := range cases {
		if got := VendorMatches(tc.slug, tc.vendor); got != tc.want {
			t.Errorf("VendorMatches(%q, %q) = %v, want %v", tc.slug, tc.vendor, got, tc.want)
		}
	}
}

func TestAvailableVendors(t *testing.T) {
	vendors := AvailableVendors()

	if len(vendors) != 5 {
		t.Fatalf("Expected 5 vendors, got %d", len(vendors))
	}
	for _, v := range vendors {
		if v.Name == "" || v.Slug == "" {
			t.Errorf("Vendor entry incomplete: %+v", v)
		}
		if !VendorMatches(v.Slug, v.Name) {
			t.Errorf("Catalog entry %q does not match its own slug %q", v.Name, v.Slug)
		}
	}
}
