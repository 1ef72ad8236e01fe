// Package format holds the pure text helpers used when rendering the page:
// price labels, HTML escaping and WhatsApp deep links.
package format

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/louisbranch/almost2simple/internal/services/landing/content"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultWhatsAppPrefill is used when WhatsAppLink receives no prefill.
const DefaultWhatsAppPrefill = "Hi! I'm interested in an easy-to-manage website."

const whatsAppBase = "https://wa.me/"

// numericPrice matches the strings formatted as rand amounts.
var numericPrice = regexp.MustCompile(`^\d+(\.\d+)?$`)

var nonDigits = regexp.MustCompile(`\D`)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// uriComponent turns url.QueryEscape output into encodeURIComponent form.
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// priceTag groups thousands with "," and keeps up to three fraction digits.
var priceTag = language.English

// FormatPrice renders a service's starting price.
//
// Absent prices and empty strings render as "". Numbers and numeric strings
// render as "From R1,000"; other strings render as "From " plus the trimmed
// text.
func FormatPrice(p content.Price) string {
	if v, ok := p.Number(); ok {
		return "From R" + groupNumber(v)
	}
	text, ok := p.Text()
	if !ok || text == "" {
		return ""
	}
	trimmed := strings.TrimSpace(text)
	if numericPrice.MatchString(trimmed) {
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return "From R" + groupNumber(v)
		}
	}
	return "From " + trimmed
}

func groupNumber(v float64) string {
	p := message.NewPrinter(priceTag)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// EscapeHTML escapes & < > " ' for interpolation into HTML markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// WhatsAppLink builds a wa.me deep link. Non-digits are stripped from the
// number; an empty number yields an empty number segment.
func WhatsAppLink(phone string, prefill string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if prefill == "" {
		prefill = DefaultWhatsAppPrefill
	}
	return whatsAppBase + digits + "?text=" + EncodeURIComponent(prefill)
}

// EncodeURIComponent percent-encodes s, leaving A-Z a-z 0-9 - _ . ! ~ * ' ( )
// unescaped and encoding spaces as %20.
func EncodeURIComponent(s string) string {
	return uriComponent.Replace(url.QueryEscape(s))
}
