package render

import "testing"

func TestLoadCopyResolvesCatalogText(t *testing.T) {
	t.Parallel()

	for _, locale := range []string{"en-US", "", "xx-YY"} {
		c := LoadCopy(locale)
		if c.BusinessName != "Almost2Simple" {
			t.Fatalf("LoadCopy(%q).BusinessName = %q", locale, c.BusinessName)
		}
		if c.EmptyPricing != "Add services in the Google Sheet." {
			t.Fatalf("LoadCopy(%q).EmptyPricing = %q", locale, c.EmptyPricing)
		}
		if c.WhatsAppPrefill != "Hi! I’m interested in an easy-to-manage website. Business:" {
			t.Fatalf("LoadCopy(%q).WhatsAppPrefill = %q", locale, c.WhatsAppPrefill)
		}
	}
}
