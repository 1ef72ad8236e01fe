package render

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/almost2simple/internal/services/landing/content"
	"github.com/louisbranch/almost2simple/internal/services/landing/format"
)

// Every payload field is escaped with format.EscapeHTML before it reaches
// markup.

func serviceItem(s content.Service) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="item"><div class="item__top"><div class="item__title">`+
			format.EscapeHTML(s.Name)+
			`</div><div class="item__meta">`+
			format.EscapeHTML(format.FormatPrice(s.FromPrice))+
			`</div></div><div class="item__desc">`+
			format.EscapeHTML(s.Description)+
			`</div></div>`)
		return err
	})
}

func pricingCard(s content.Service, whatsAppLink string, cta string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="card"><h3>`+
			format.EscapeHTML(s.Name)+
			`</h3><p class="muted">`+
			format.EscapeHTML(s.Description)+
			`</p><div style="margin-top:10px;font-weight:800">`+
			format.EscapeHTML(format.FormatPrice(s.FromPrice))+
			`</div><div style="margin-top:14px"><a class="btn btn--primary" href="`+
			format.EscapeHTML(whatsAppLink)+
			`" target="_blank" rel="noopener">`+
			format.EscapeHTML(cta)+
			`</a></div></div>`)
		return err
	})
}

func faqEntry(f content.FAQEntry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<details><summary>`+
			format.EscapeHTML(f.Question)+
			`</summary><p>`+
			format.EscapeHTML(f.Answer)+
			`</p></details>`)
		return err
	})
}

func placeholder(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="muted">`+format.EscapeHTML(text)+`</div>`)
		return err
	})
}

// renderList renders items back to back, or empty when there are none.
func renderList(ctx context.Context, items []templ.Component, empty templ.Component) (string, error) {
	if len(items) == 0 {
		items = []templ.Component{empty}
	}
	var buf bytes.Buffer
	for _, item := range items {
		if err := item.Render(ctx, &buf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
