// Package content holds the page payload fetched from the sheet endpoint.
//
// A Payload is a read-only snapshot for one render pass; nothing in this
// package retains it.
package content

// Settings is the business-level display configuration.
type Settings struct {
	BusinessName    string
	Tagline         string
	Location        string
	Email           string
	WhatsApp        string
	PrimaryColor    string
	MetaTitle       string
	MetaDescription string
}

// Service is one sellable offering, rendered both as a list item and as a
// pricing card.
type Service struct {
	Name        string
	Description string
	FromPrice   Price
}

// FAQEntry is a question/answer pair.
type FAQEntry struct {
	Question string
	Answer   string
}

// Payload is the full document returned by the sheet endpoint.
type Payload struct {
	Settings Settings
	Services []Service
	FAQ      []FAQEntry
}

type priceKind uint8

const (
	priceAbsent priceKind = iota
	priceNumber
	priceText
)

// Price is a service's starting price as the sheet provided it: absent, a
// JSON number, or free text such as "1500" or "Custom quote".
type Price struct {
	kind   priceKind
	number float64
	text   string
}

// NumberPrice returns a price backed by a JSON number.
func NumberPrice(v float64) Price {
	return Price{kind: priceNumber, number: v}
}

// TextPrice returns a price backed by a JSON string.
func TextPrice(s string) Price {
	return Price{kind: priceText, text: s}
}

// IsAbsent reports whether the price was missing or null.
func (p Price) IsAbsent() bool {
	return p.kind == priceAbsent
}

// Number returns the numeric value when the price is a JSON number.
func (p Price) Number() (float64, bool) {
	return p.number, p.kind == priceNumber
}

// Text returns the raw string when the price is a JSON string.
func (p Price) Text() (string, bool) {
	return p.text, p.kind == priceText
}

// Or returns value when it is non-empty, otherwise fallback.
func Or(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
