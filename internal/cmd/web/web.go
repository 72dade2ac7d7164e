// Package web parses configuration for and runs the passport admin web
// service.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/tuvarna/passport-admin/internal/platform/cmd"
	"github.com/tuvarna/passport-admin/internal/services/web"
	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
)

// Config holds the web command configuration. Environment variables supply
// defaults; flags override them.
type Config struct {
	HTTPAddr             string        `env:"PASSPORT_ADMIN_HTTP_ADDR" envDefault:"localhost:8090"`
	APIBaseURL           string        `env:"PASSPORT_ADMIN_API_BASE_URL" envDefault:"http://localhost:8080/api/v1"`
	APITimeout           time.Duration `env:"PASSPORT_ADMIN_API_TIMEOUT" envDefault:"0s"`
	SessionDBPath        string        `env:"PASSPORT_ADMIN_SESSION_DB_PATH" envDefault:"data/web-sessions.db"`
	SessionTTL           time.Duration `env:"PASSPORT_ADMIN_SESSION_TTL" envDefault:"12h"`
	SessionSweepInterval time.Duration `env:"PASSPORT_ADMIN_SESSION_SWEEP_INTERVAL" envDefault:"10m"`
	TrustForwardedProto  bool          `env:"PASSPORT_ADMIN_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig loads environment defaults and then parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag set is required")
	}
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Passport API base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Optional timeout for each API call (0 uses transport defaults)")
	fs.StringVar(&cfg.SessionDBPath, "session-db-path", cfg.SessionDBPath, "SQLite session database path")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session lifetime when the API token has no expiry")
	fs.DurationVar(&cfg.SessionSweepInterval, "session-sweep-interval", cfg.SessionSweepInterval, "Interval between expired-session sweeps")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto from a trusted proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	cfg.HTTPAddr = strings.TrimSpace(cfg.HTTPAddr)
	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = apiclient.DefaultBaseURL
	}
	if cfg.APITimeout < 0 {
		return Config{}, fmt.Errorf("api timeout must not be negative, got %s", cfg.APITimeout)
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:             cfg.HTTPAddr,
			APIBaseURL:           cfg.APIBaseURL,
			APITimeout:           cfg.APITimeout,
			SessionDBPath:        cfg.SessionDBPath,
			SessionTTL:           cfg.SessionTTL,
			SessionSweepInterval: cfg.SessionSweepInterval,
			TrustForwardedProto:  cfg.TrustForwardedProto,
			Logger:               log.Default(),
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
