// Package render decorates the landing page shell with sheet content.
package render

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/almost2simple/internal/platform/errors"
	errori18n "github.com/louisbranch/almost2simple/internal/platform/errors/i18n"
	"github.com/louisbranch/almost2simple/internal/services/landing/content"
	"github.com/louisbranch/almost2simple/internal/services/landing/format"
	"github.com/louisbranch/almost2simple/internal/services/landing/sheet"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/almost2simple/internal/services/landing/render"

// DefaultEndpointVariable names the setting operators fix when the alert
// reports a missing endpoint.
const DefaultEndpointVariable = "ALMOST2SIMPLE_SHEET_API_URL"

// Page is the mutable page the renderer writes into.
type Page interface {
	SetText(id string, text string) error
	SetInnerHTML(id string, markup string) error
	SetAttr(id string, key string, value string) error
	SetTitle(title string)
	SetMetaContent(attr string, key string, value string)
	SetThemeColor(color string)
	AppendHeadScript(scriptType string, body string)
	Alert(message string)
}

// Source provides the sheet payload.
type Source interface {
	Endpoint() string
	Fetch(ctx context.Context) (content.Payload, error)
}

// Config configures a Renderer.
type Config struct {
	Source Source
	// Now defaults to time.Now.
	Now    func() time.Time
	Locale string
	Logger *log.Logger
	// EndpointVariable is shown in the misconfiguration alert.
	EndpointVariable string
}

// Renderer fills one page per call from a fresh fetch.
type Renderer struct {
	source           Source
	now              func() time.Time
	copy             Copy
	alerts           *errori18n.Catalog
	logger           *log.Logger
	endpointVariable string
	tracer           trace.Tracer
}

// New builds a Renderer.
func New(cfg Config) (*Renderer, error) {
	if cfg.Source == nil {
		return nil, errors.New("content source is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	variable := strings.TrimSpace(cfg.EndpointVariable)
	if variable == "" {
		variable = DefaultEndpointVariable
	}
	return &Renderer{
		source:           cfg.Source,
		now:              now,
		copy:             LoadCopy(cfg.Locale),
		alerts:           errori18n.GetCatalog(cfg.Locale),
		logger:           logger,
		endpointVariable: variable,
		tracer:           otel.Tracer(tracerName),
	}, nil
}

// Render runs one full pass over page.
//
// The year is always set. A misconfigured endpoint or a failed fetch raises
// one alert on the page, leaves the content containers untouched and
// returns the typed error. pageURL is recorded in the structured data.
func (r *Renderer) Render(ctx context.Context, page Page, pageURL string) (err error) {
	if r == nil {
		return errors.New("renderer is nil")
	}
	if page == nil {
		return errors.New("page is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := r.tracer.Start(ctx, "landing.render")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String("landing.error_code", string(apperrors.CodeOf(err))))
		}
		span.End()
	}()

	if err := page.SetText("year", strconv.Itoa(r.now().Year())); err != nil {
		return err
	}

	if err := sheet.ValidateEndpoint(r.source.Endpoint()); err != nil {
		r.logger.Printf("sheet endpoint misconfigured code=%s err=%v", apperrors.CodeOf(err), err)
		page.Alert(r.alertText(err))
		return err
	}

	payload, err := r.source.Fetch(ctx)
	if err != nil {
		r.logger.Printf("sheet fetch failed code=%s err=%v", apperrors.CodeOf(err), err)
		page.Alert(r.alertText(err))
		return err
	}
	span.SetAttributes(
		attribute.Int("landing.services.count", len(payload.Services)),
		attribute.Int("landing.faq.count", len(payload.FAQ)),
	)
	return r.fill(ctx, page, payload, pageURL)
}

func (r *Renderer) fill(ctx context.Context, page Page, payload content.Payload, pageURL string) error {
	s := payload.Settings
	businessName := content.Or(s.BusinessName, r.copy.BusinessName)

	texts := []struct{ id, text string }{
		{"businessName", businessName},
		{"businessNameFooter", businessName},
		{"tagline", s.Tagline},
		{"h1", content.Or(s.Tagline, r.copy.Heading)},
		{"location", content.Or(s.Location, r.copy.Location)},
		{"emailText", content.Or(s.Email, r.copy.Email)},
	}
	for _, t := range texts {
		if err := page.SetText(t.id, t.text); err != nil {
			return err
		}
	}

	if safeThemeColor(s.PrimaryColor) {
		page.SetThemeColor(s.PrimaryColor)
	} else if s.PrimaryColor != "" {
		r.logger.Printf("ignoring unsafe primary_color value=%q", s.PrimaryColor)
	}
	setMeta(page, content.Or(s.MetaTitle, businessName), s.MetaDescription)

	waLink := format.WhatsAppLink(s.WhatsApp, r.copy.WhatsAppPrefill)
	if err := page.SetAttr("whatsappBtn", "href", waLink); err != nil {
		return err
	}
	if err := page.SetAttr("whatsappBtn", "target", "_blank"); err != nil {
		return err
	}

	services := make([]templ.Component, 0, len(payload.Services))
	cards := make([]templ.Component, 0, len(payload.Services))
	for _, svc := range payload.Services {
		services = append(services, serviceItem(svc))
		cards = append(cards, pricingCard(svc, waLink, r.copy.PricingCTA))
	}
	faq := make([]templ.Component, 0, len(payload.FAQ))
	for _, entry := range payload.FAQ {
		faq = append(faq, faqEntry(entry))
	}

	sections := []struct {
		id    string
		items []templ.Component
		empty string
	}{
		{"services", services, r.copy.EmptyServices},
		{"pricingGrid", cards, r.copy.EmptyPricing},
		{"faq", faq, r.copy.EmptyFAQ},
	}
	for _, section := range sections {
		markup, err := renderList(ctx, section.items, placeholder(section.empty))
		if err != nil {
			return fmt.Errorf("render #%s: %w", section.id, err)
		}
		if err := page.SetInnerHTML(section.id, markup); err != nil {
			return err
		}
	}

	schema, err := businessJSONLD(s, r.copy.BusinessName, pageURL)
	if err != nil {
		return fmt.Errorf("encode structured data: %w", err)
	}
	page.AppendHeadScript(ldJSONType, schema)
	return nil
}

// setMeta always sets the title; the description tags change only when a
// description is provided.
func setMeta(page Page, title string, description string) {
	if title != "" {
		page.SetTitle(title)
		page.SetMetaContent("property", "og:title", title)
	}
	if description != "" {
		page.SetMetaContent("name", "description", description)
		page.SetMetaContent("property", "og:description", description)
	}
}

// safeThemeColor rejects values that could break out of the style attribute.
func safeThemeColor(color string) bool {
	return color != "" && !strings.ContainsAny(color, ";{}<>\"\\\n\r")
}

// alertText resolves the visitor-facing message for err. Untyped errors come
// from the content source and read as a failed fetch.
func (r *Renderer) alertText(err error) string {
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown {
		code = apperrors.CodeFetchFailed
	}
	return r.alerts.Format(string(code), map[string]string{
		"Variable": r.endpointVariable,
	})
}
