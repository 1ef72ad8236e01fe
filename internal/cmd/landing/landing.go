// Package landing parses landing command flags and launches the landing
// page service.
package landing

import (
	"context"
	"flag"
	"fmt"
	"log"

	entrypoint "github.com/louisbranch/almost2simple/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/almost2simple/internal/platform/grpc"
	landingservice "github.com/louisbranch/almost2simple/internal/services/landing"
	"github.com/louisbranch/almost2simple/internal/services/landing/sheet"
	"golang.org/x/sync/errgroup"
)

// DefaultSheetAPIURL is the Apps Script web app serving the page content.
const DefaultSheetAPIURL = "https://script.google.com/macros/s/AKfycbyybKXch_-ufU2mZ6KJES948WC7tkQYQkBuilmdA0SGhF5I4QhwVx2r1XJJisTtLzDV/exec"

// Config holds landing command configuration.
type Config struct {
	HTTPAddr            string `env:"HTTP_ADDR" envDefault:"localhost:8080"`
	GRPCAddr            string `env:"GRPC_ADDR"`
	SheetAPIURL         string `env:"SHEET_API_URL" envDefault:"https://script.google.com/macros/s/AKfycbyybKXch_-ufU2mZ6KJES948WC7tkQYQkBuilmdA0SGhF5I4QhwVx2r1XJJisTtLzDV/exec"`
	TrustForwardedProto bool   `env:"TRUST_FORWARDED_PROTO"`
	Locale              string `env:"LOCALE" envDefault:"en-US"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health listen address (empty disables)")
	fs.StringVar(&cfg.SheetAPIURL, "sheet-api-url", cfg.SheetAPIURL, "Apps Script web app URL serving page content")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto when building page URLs")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for page copy")
}

// Run starts the landing HTTP server and, when configured, the gRPC health
// endpoint. The health endpoint reports SERVING only while the sheet
// endpoint is configured.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLanding, func(ctx context.Context) error {
		if err := sheet.ValidateEndpoint(cfg.SheetAPIURL); err != nil {
			log.Printf("sheet endpoint misconfigured, pages will show the setup alert: %v", err)
		}

		server, err := landingservice.NewServer(ctx, landingservice.Config{
			HTTPAddr:            cfg.HTTPAddr,
			SheetAPIURL:         cfg.SheetAPIURL,
			TrustForwardedProto: cfg.TrustForwardedProto,
			Locale:              cfg.Locale,
		})
		if err != nil {
			return fmt.Errorf("init landing server: %w", err)
		}
		defer server.Close()

		var health *platformgrpc.HealthServer
		if cfg.GRPCAddr != "" {
			health, err = platformgrpc.NewHealthServer(cfg.GRPCAddr)
			if err != nil {
				return fmt.Errorf("init grpc health: %w", err)
			}
			health.SetServing(entrypoint.ServiceLanding, sheet.ValidateEndpoint(cfg.SheetAPIURL) == nil)
			log.Printf("landing grpc health listening addr=%s", health.Addr())
		}

		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			return server.ListenAndServe(groupCtx)
		})
		if health != nil {
			group.Go(func() error {
				return health.Serve(groupCtx)
			})
		}
		if err := group.Wait(); err != nil {
			return fmt.Errorf("serve landing: %w", err)
		}
		return nil
	})
}
