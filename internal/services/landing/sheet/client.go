// Package sheet fetches the page payload from the Apps Script web app that
// fronts the content sheet.
package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/almost2simple/internal/platform/errors"
	"github.com/louisbranch/almost2simple/internal/platform/timeouts"
	"github.com/louisbranch/almost2simple/internal/services/landing/content"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// placeholderMarker marks the sample endpoint shipped in docs and configs.
const placeholderMarker = "ignore"

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

const tracerName = "github.com/louisbranch/almost2simple/internal/services/landing/sheet"

// ValidateEndpoint rejects an empty endpoint or one still holding the
// placeholder text.
func ValidateEndpoint(endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return apperrors.New(apperrors.CodeEndpointMissing, "sheet endpoint is not configured")
	}
	if strings.Contains(endpoint, placeholderMarker) {
		return apperrors.New(apperrors.CodeEndpointPlaceholder, "sheet endpoint is a placeholder")
	}
	return nil
}

// Client fetches payloads from one sheet endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient returns a client for endpoint. A nil httpClient gets a client
// bounded by timeouts.SheetFetch.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.SheetFetch}
	}
	return &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: httpClient,
		tracer:     otel.Tracer(tracerName),
	}
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	if c == nil {
		return ""
	}
	return c.endpoint
}

// Fetch performs one uncached GET and decodes the body.
//
// The response status is not checked: a non-2xx response whose body is
// valid JSON decodes like any other.
func (c *Client) Fetch(ctx context.Context) (content.Payload, error) {
	if c == nil {
		return content.Payload{}, apperrors.New(apperrors.CodeEndpointMissing, "sheet client is nil")
	}
	if err := ValidateEndpoint(c.endpoint); err != nil {
		return content.Payload{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := c.tracer.Start(ctx, "sheet.fetch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return content.Payload{}, failSpan(span, apperrors.Wrap(apperrors.CodeFetchFailed, "build sheet request", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return content.Payload{}, failSpan(span, apperrors.Wrap(apperrors.CodeFetchFailed, "fetch sheet", err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return content.Payload{}, failSpan(span, apperrors.Wrap(apperrors.CodeFetchFailed, "read sheet body", err))
	}
	span.SetAttributes(attribute.Int("http.response.body.size", len(body)))

	payload, err := content.Decode(body)
	if err != nil {
		wrapped := apperrors.Wrap(apperrors.CodeDecodeFailed, fmt.Sprintf("decode sheet payload (status %d)", resp.StatusCode), err)
		return content.Payload{}, failSpan(span, wrapped)
	}
	span.SetAttributes(
		attribute.Int("landing.services.count", len(payload.Services)),
		attribute.Int("landing.faq.count", len(payload.FAQ)),
	)
	return payload, nil
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
