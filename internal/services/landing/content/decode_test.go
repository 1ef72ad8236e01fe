package content

import (
	"errors"
	"testing"
)

func TestDecodeFullPayload(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"settings": {
			"business_name": "Cape Sites",
			"tagline": "Websites you can edit",
			"location": "Stellenbosch",
			"email": "hello@capesites.co.za",
			"whatsapp": "+27 82 123 4567",
			"primary_color": "#0f766e",
			"meta_title": "Cape Sites | Websites",
			"meta_description": "Simple sites for small businesses"
		},
		"services": [
			{"name": "Starter", "description": "One page", "from_price": 1500},
			{"name": "Growth", "description": "Five pages", "from_price": "3500"},
			{"name": "Custom", "description": "Anything", "from_price": "Custom quote"},
			{"name": "Free", "description": "Nothing"}
		],
		"faq": [
			{"question": "How long?", "answer": "Two weeks."}
		]
	}`)

	payload, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := Settings{
		BusinessName:    "Cape Sites",
		Tagline:         "Websites you can edit",
		Location:        "Stellenbosch",
		Email:           "hello@capesites.co.za",
		WhatsApp:        "+27 82 123 4567",
		PrimaryColor:    "#0f766e",
		MetaTitle:       "Cape Sites | Websites",
		MetaDescription: "Simple sites for small businesses",
	}
	if payload.Settings != want {
		t.Fatalf("Settings = %+v, want %+v", payload.Settings, want)
	}
	if len(payload.Services) != 4 {
		t.Fatalf("len(Services) = %d, want 4", len(payload.Services))
	}
	if v, ok := payload.Services[0].FromPrice.Number(); !ok || v != 1500 {
		t.Fatalf("Services[0].FromPrice = %v, %t", v, ok)
	}
	if v, ok := payload.Services[1].FromPrice.Text(); !ok || v != "3500" {
		t.Fatalf("Services[1].FromPrice = %q, %t", v, ok)
	}
	if v, ok := payload.Services[2].FromPrice.Text(); !ok || v != "Custom quote" {
		t.Fatalf("Services[2].FromPrice = %q, %t", v, ok)
	}
	if !payload.Services[3].FromPrice.IsAbsent() {
		t.Fatal("expected Services[3].FromPrice to be absent")
	}
	if len(payload.FAQ) != 1 || payload.FAQ[0] != (FAQEntry{Question: "How long?", Answer: "Two weeks."}) {
		t.Fatalf("FAQ = %+v", payload.FAQ)
	}
}

func TestDecodeMissingKeysYieldEmptyPayload(t *testing.T) {
	t.Parallel()

	payload, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if payload.Settings != (Settings{}) {
		t.Fatalf("Settings = %+v, want zero", payload.Settings)
	}
	if len(payload.Services) != 0 || len(payload.FAQ) != 0 {
		t.Fatalf("expected empty collections, got %d services %d faq", len(payload.Services), len(payload.FAQ))
	}
}

func TestDecodeWrongShapesYieldEmpty(t *testing.T) {
	t.Parallel()

	payload, err := Decode([]byte(`{"settings": "nope", "services": {"name": "x"}, "faq": "none"}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if payload.Settings != (Settings{}) {
		t.Fatalf("Settings = %+v, want zero", payload.Settings)
	}
	if payload.Services != nil || payload.FAQ != nil {
		t.Fatalf("expected nil collections, got %+v %+v", payload.Services, payload.FAQ)
	}
}

func TestDecodeNonObjectEntriesBecomeZeroItems(t *testing.T) {
	t.Parallel()

	payload, err := Decode([]byte(`{"services": [42, null, {"name": 7, "description": false}], "faq": ["q"]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(payload.Services) != 3 {
		t.Fatalf("len(Services) = %d, want 3", len(payload.Services))
	}
	if payload.Services[0].Name != "" || !payload.Services[0].FromPrice.IsAbsent() {
		t.Fatalf("Services[0] = %+v, want zero", payload.Services[0])
	}
	if payload.Services[2].Name != "7" || payload.Services[2].Description != "false" {
		t.Fatalf("Services[2] = %+v", payload.Services[2])
	}
	if len(payload.FAQ) != 1 || payload.FAQ[0] != (FAQEntry{}) {
		t.Fatalf("FAQ = %+v", payload.FAQ)
	}
}

func TestDecodeSettingsFalsyValuesAreEmpty(t *testing.T) {
	t.Parallel()

	payload, err := Decode([]byte(`{"settings": {"business_name": 0, "tagline": false, "location": null, "whatsapp": 27821234567, "email": ""}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	s := payload.Settings
	if s.BusinessName != "" || s.Tagline != "" || s.Location != "" || s.Email != "" {
		t.Fatalf("expected falsy settings to be empty, got %+v", s)
	}
	if s.WhatsApp != "27821234567" {
		t.Fatalf("WhatsApp = %q, want %q", s.WhatsApp, "27821234567")
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "empty", body: "", want: ErrMalformed},
		{name: "html", body: "<!doctype html><p>Sign in</p>", want: ErrMalformed},
		{name: "truncated", body: `{"settings": {`, want: ErrMalformed},
		{name: "null", body: "null", want: ErrNullPayload},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode([]byte(tc.body)); !errors.Is(err, tc.want) {
				t.Fatalf("Decode() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDecodeNonObjectRootIsEmpty(t *testing.T) {
	t.Parallel()

	payload, err := Decode([]byte(`[1, 2, 3]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if payload.Services != nil || payload.FAQ != nil || payload.Settings != (Settings{}) {
		t.Fatalf("expected empty payload, got %+v", payload)
	}
}

func TestOr(t *testing.T) {
	t.Parallel()

	if got := Or("", "Almost2Simple"); got != "Almost2Simple" {
		t.Fatalf("Or(empty) = %q", got)
	}
	if got := Or(" ", "Almost2Simple"); got != " " {
		t.Fatalf("Or(space) = %q, want space kept", got)
	}
	if got := Or("Cape Sites", "Almost2Simple"); got != "Cape Sites" {
		t.Fatalf("Or(value) = %q", got)
	}
}
