// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/pkordes/hunt-packages/backend/internal/email"
)

// Catalog source kinds, in priority order.
const (
	SourceDatabase = "database"
	SourceURL      = "url"
	SourceFile     = "file"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server. Set CORS_ORIGINS to a comma-separated
	// list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// DatabaseURL, CatalogURL and CatalogPath name where the hunt catalog is
	// read from. At least one is required; the first set one in that order
	// wins. With a database, CatalogPath seeds an empty catalog table.
	DatabaseURL string `env:"DATABASE_URL"`
	CatalogURL  string `env:"CATALOG_URL"`
	CatalogPath string `env:"CATALOG_PATH"`

	// CatalogFetchTimeout bounds one HTTP fetch of CatalogURL.
	CatalogFetchTimeout time.Duration `env:"CATALOG_FETCH_TIMEOUT" envDefault:"10s"`

	// SessionTTL is how long an untouched package session is kept.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// ContactEmail receives inquiries and is the mailto target.
	ContactEmail string `env:"CONTACT_EMAIL" envDefault:"info@outbackhuntingnewzealand.com"`

	// InquiryRatePerMinute limits POST /inquiries per client IP.
	InquiryRatePerMinute int `env:"INQUIRY_RATE_PER_MINUTE" envDefault:"5"`

	// Mail configures Mailgun delivery from MAILGUN_* variables. Without a
	// domain and API key, inquiries are only returned as mailto links.
	Mail email.Config `envPrefix:"MAILGUN_"`
}

// CatalogSource reports which catalog source Load selected.
func (c Config) CatalogSource() string {
	switch {
	case c.DatabaseURL != "":
		return SourceDatabase
	case c.CatalogURL != "":
		return SourceURL
	default:
		return SourceFile
	}
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return finish(cfg)
}

// LoadFrom reads configuration from vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("config.LoadFrom: %w", err)
	}
	return finish(cfg)
}

// finish normalizes list values and returns an error listing every problem.
func finish(cfg Config) (Config, error) {
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	var problems []string
	if cfg.DatabaseURL == "" && cfg.CatalogURL == "" && cfg.CatalogPath == "" {
		problems = append(problems, "one of DATABASE_URL, CATALOG_URL or CATALOG_PATH must be set")
	}
	if cfg.CatalogFetchTimeout <= 0 {
		problems = append(problems, "CATALOG_FETCH_TIMEOUT must be positive")
	}
	if cfg.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}
	if cfg.MaxBodyBytes <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be positive")
	}
	if cfg.InquiryRatePerMinute <= 0 {
		problems = append(problems, "INQUIRY_RATE_PER_MINUTE must be positive")
	}
	if strings.TrimSpace(cfg.ContactEmail) == "" {
		problems = append(problems, "CONTACT_EMAIL must not be empty")
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// trimAll trims each entry, dropping empty ones.
func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
