package content

import (
	"errors"
	"strconv"

	"github.com/tidwall/gjson"
)

// ErrMalformed reports a body that is not valid JSON.
var ErrMalformed = errors.New("payload is not valid JSON")

// ErrNullPayload reports a body that is the JSON literal null.
var ErrNullPayload = errors.New("payload is null")

// Decode parses a sheet response body.
//
// Decoding is shape-tolerant: a top-level key that is absent or of the wrong
// shape (settings not an object, services or faq not an array) decodes as
// empty, and collection entries that are not objects decode as zero items.
func Decode(body []byte) (Payload, error) {
	if !gjson.ValidBytes(body) {
		return Payload{}, ErrMalformed
	}
	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return Payload{}, ErrNullPayload
	}
	if !root.IsObject() {
		return Payload{}, nil
	}

	var payload Payload
	if settings := root.Get("settings"); settings.IsObject() {
		payload.Settings = decodeSettings(settings)
	}
	if services := root.Get("services"); services.IsArray() {
		items := services.Array()
		payload.Services = make([]Service, 0, len(items))
		for _, item := range items {
			payload.Services = append(payload.Services, Service{
				Name:        fieldText(item, "name"),
				Description: fieldText(item, "description"),
				FromPrice:   decodePrice(item),
			})
		}
	}
	if faq := root.Get("faq"); faq.IsArray() {
		items := faq.Array()
		payload.FAQ = make([]FAQEntry, 0, len(items))
		for _, item := range items {
			payload.FAQ = append(payload.FAQ, FAQEntry{
				Question: fieldText(item, "question"),
				Answer:   fieldText(item, "answer"),
			})
		}
	}
	return payload, nil
}

func decodeSettings(obj gjson.Result) Settings {
	return Settings{
		BusinessName:    settingText(obj.Get("business_name")),
		Tagline:         settingText(obj.Get("tagline")),
		Location:        settingText(obj.Get("location")),
		Email:           settingText(obj.Get("email")),
		WhatsApp:        settingText(obj.Get("whatsapp")),
		PrimaryColor:    settingText(obj.Get("primary_color")),
		MetaTitle:       settingText(obj.Get("meta_title")),
		MetaDescription: settingText(obj.Get("meta_description")),
	}
}

// settingText converts a settings value to display text. Falsy values
// (null, false, 0, "") are empty so defaults apply to them.
func settingText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		if v.Num == 0 {
			return ""
		}
		return formatNumber(v.Num)
	case gjson.True:
		return "true"
	default:
		return ""
	}
}

// fieldText converts a collection field to text; only null and missing
// values are empty.
func fieldText(item gjson.Result, key string) string {
	if !item.IsObject() {
		return ""
	}
	v := item.Get(key)
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return formatNumber(v.Num)
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	default:
		return ""
	}
}

func decodePrice(item gjson.Result) Price {
	if !item.IsObject() {
		return Price{}
	}
	v := item.Get("from_price")
	switch v.Type {
	case gjson.Number:
		return NumberPrice(v.Num)
	case gjson.String:
		return TextPrice(v.Str)
	case gjson.True:
		return TextPrice("true")
	case gjson.False:
		return TextPrice("false")
	default:
		return Price{}
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
