package render

import (
	i18ncatalog "github.com/louisbranch/almost2simple/internal/platform/i18n/catalog"
)

// Copy holds the page's fixed user-visible text.
type Copy struct {
	BusinessName    string
	Heading         string
	Location        string
	Email           string
	EmptyServices   string
	EmptyPricing    string
	EmptyFAQ        string
	WhatsAppPrefill string
	PricingCTA      string
}

// LoadCopy resolves page copy for locale from the embedded catalog.
// Unknown locales resolve to en-US.
func LoadCopy(locale string) Copy {
	p := i18ncatalog.Default().Printer(locale)
	return Copy{
		BusinessName:    p.Sprintf("landing.default.business_name"),
		Heading:         p.Sprintf("landing.default.heading"),
		Location:        p.Sprintf("landing.default.location"),
		Email:           p.Sprintf("landing.default.email"),
		EmptyServices:   p.Sprintf("landing.empty.services"),
		EmptyPricing:    p.Sprintf("landing.empty.pricing"),
		EmptyFAQ:        p.Sprintf("landing.empty.faq"),
		WhatsAppPrefill: p.Sprintf("landing.whatsapp.prefill"),
		PricingCTA:      p.Sprintf("landing.pricing.cta"),
	}
}
