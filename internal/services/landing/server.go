package landing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/almost2simple/internal/platform/timeouts"
	"github.com/louisbranch/almost2simple/internal/services/landing/platform/httpx"
	"github.com/louisbranch/almost2simple/internal/services/landing/platform/observability"
	"github.com/louisbranch/almost2simple/internal/services/landing/platform/requestmeta"
	"github.com/louisbranch/almost2simple/internal/services/landing/render"
	"github.com/louisbranch/almost2simple/internal/services/landing/sheet"
	landingstatic "github.com/louisbranch/almost2simple/internal/services/landing/static"
)

// Config defines startup inputs for the landing service.
type Config struct {
	HTTPAddr string
	// SheetAPIURL is the Apps Script web app serving the page content.
	SheetAPIURL         string
	TrustForwardedProto bool
	Locale              string
	// HTTPClient performs sheet fetches; nil uses a client bounded by
	// timeouts.SheetFetch.
	HTTPClient *http.Client
	// Source overrides the sheet client.
	Source render.Source
	Now    func() time.Time
	Logger *log.Logger
}

// Server hosts the landing HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	source := cfg.Source
	if source == nil {
		source = sheet.NewClient(cfg.SheetAPIURL, cfg.HTTPClient)
	}
	renderer, err := render.New(render.Config{
		Source: source,
		Now:    cfg.Now,
		Locale: cfg.Locale,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	pages := pageHandler{
		renderer: renderer,
		policy:   requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		logger:   logger,
	}
	get := httpx.RequireMethod(http.MethodGet)

	rootMux := http.NewServeMux()
	rootMux.Handle("/{$}", httpx.Chain(pages, get, httpx.NoStore()))
	rootMux.Handle("/healthz", httpx.Chain(http.HandlerFunc(healthHandler), get))
	rootMux.Handle("/static/", httpx.Chain(
		http.StripPrefix("/static/", http.FileServer(http.FS(landingstatic.FS))),
		get,
	))
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs a landing server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose landing handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("landing server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("landing listening addr=%s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown landing http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve landing http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
