// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the OFOLIO_* environment into a Config.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "OFOLIO_"

// MinTokenSecretLength is the minimum length of the HS256 signing secret.
const MinTokenSecretLength = 32

// knownWeakSecrets are sample values from docs and .env templates.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

var supportedDrivers = []string{"pgx", "postgres", "postgresql", "mysql", "sqlite", "sqlite3"}

// Config is the process configuration. Tags omit EnvPrefix.
type Config struct {
	// Services, portfolio, blog posts and admin accounts.
	ContentDBDriver string `env:"CONTENT_DB_DRIVER" envDefault:"pgx"`
	ContentDBDSN    string `env:"CONTENT_DB_DSN,required"`

	// Contact, order, subscription and review submissions.
	FormsDBDriver string `env:"FORMS_DB_DRIVER" envDefault:"mysql"`
	FormsDBDSN    string `env:"FORMS_DB_DSN,required"`

	TokenSecret string     `env:"TOKEN_SECRET,required"`
	ServerHost  string     `env:"SERVER_HOST" envDefault:"localhost"`
	ServerPort  int        `env:"SERVER_PORT" envDefault:"8080"`
	Env         string     `env:"ENV" envDefault:"development"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`
	MailTo       string `env:"MAIL_TO"`

	// Public read cache. Memory is used when RedisURL is empty.
	RedisURL        string        `env:"REDIS_URL"`
	CachePrefix     string        `env:"CACHE_PREFIX" envDefault:"ofolio:"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CacheMaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"1024"`

	// Origins of the public site and admin SPA.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// Token bucket per client IP on the public routes.
	PublicRateLimit float64 `env:"PUBLIC_RATE_LIMIT" envDefault:"5"`
	PublicRateBurst int     `env:"PUBLIC_RATE_BURST" envDefault:"10"`

	DoSeed        bool   `env:"DO_SEED" envDefault:"false"`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr is the listen address in host:port form.
func (c Config) ServerAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// MailEnabled reports whether notifications go through an SMTP relay.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

// Load reads the environment. Every invalid setting is reported at once.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	for i, origin := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(origin)
	}
	cfg.CORSOrigins = slices.DeleteFunc(cfg.CORSOrigins, func(o string) bool { return o == "" })

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if !hasMinimumEntropy(cfg.TokenSecret) {
		slog.Warn(EnvPrefix + "TOKEN_SECRET has low character diversity; generate one with: openssl rand -base64 32")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	switch {
	case len(c.TokenSecret) < MinTokenSecretLength:
		fail("%sTOKEN_SECRET must be at least %d bytes, got %d; generate one with: openssl rand -base64 32",
			EnvPrefix, MinTokenSecretLength, len(c.TokenSecret))
	case slices.Contains(knownWeakSecrets, c.TokenSecret):
		fail("%sTOKEN_SECRET is a published sample value", EnvPrefix)
	}

	for name, driver := range map[string]string{"CONTENT_DB_DRIVER": c.ContentDBDriver, "FORMS_DB_DRIVER": c.FormsDBDriver} {
		if !slices.Contains(supportedDrivers, driver) {
			fail("%s%s %q is not one of %s", EnvPrefix, name, driver, strings.Join(supportedDrivers, ", "))
		}
	}

	if c.Env != "development" && c.Env != "production" {
		fail("%sENV must be development or production, got %q", EnvPrefix, c.Env)
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		fail("%sSERVER_PORT %d is out of range", EnvPrefix, c.ServerPort)
	}
	if c.CacheTTL <= 0 {
		fail("%sCACHE_TTL must be positive", EnvPrefix)
	}
	if c.PublicRateLimit <= 0 || c.PublicRateBurst < 1 {
		fail("%sPUBLIC_RATE_LIMIT and %sPUBLIC_RATE_BURST must be positive", EnvPrefix, EnvPrefix)
	}
	if c.MailEnabled() && (c.MailFrom == "" || c.MailTo == "") {
		fail("%sMAIL_FROM and %sMAIL_TO are required when %sSMTP_HOST is set", EnvPrefix, EnvPrefix, EnvPrefix)
	}
	if c.DoSeed && c.AdminPassword == "" {
		fail("%sADMIN_PASSWORD is required when %sDO_SEED is enabled", EnvPrefix, EnvPrefix)
	}

	return errors.Join(errs...)
}

// hasMinimumEntropy wants at least three of: lowercase, uppercase, digits,
// punctuation.
func hasMinimumEntropy(s string) bool {
	var lower, upper, digit, other bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	n := 0
	for _, has := range []bool{lower, upper, digit, other} {
		if has {
			n++
		}
	}
	return n >= 3
}
