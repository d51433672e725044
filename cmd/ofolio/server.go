// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/ofolio-go/internal/auth"
	"github.com/olegiv/ofolio-go/internal/cache"
	"github.com/olegiv/ofolio-go/internal/config"
	"github.com/olegiv/ofolio-go/internal/handler/api"
	"github.com/olegiv/ofolio-go/internal/mailer"
	"github.com/olegiv/ofolio-go/internal/middleware"
	"github.com/olegiv/ofolio-go/internal/store"
	"github.com/olegiv/ofolio-go/internal/version"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

// serve wires the databases, cache and mailer into the router and blocks
// until ctx is cancelled or the listener fails.
func serve(ctx context.Context, cfg *config.Config, build version.Info) error {
	contentDB, err := openDatabase(ctx, "content", cfg.ContentDBDriver, cfg.ContentDBDSN, store.SchemaContent)
	if err != nil {
		return err
	}
	defer closeDatabase("content", contentDB)

	formsDB, err := openDatabase(ctx, "forms", cfg.FormsDBDriver, cfg.FormsDBDSN, store.SchemaForms)
	if err != nil {
		return err
	}
	defer closeDatabase("forms", formsDB)

	content, forms := store.New(contentDB), store.New(formsDB)

	if cfg.DoSeed {
		admin, created, err := store.SeedAdmin(ctx, content, store.AdminSeed{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			Name:     cfg.AdminName,
		})
		if err != nil {
			return fmt.Errorf("seeding admin user: %w", err)
		}
		slog.Info("admin account ready", "email", admin.Email, "created", created)
	}

	backend := cache.New(ctx, cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTL,
		MaxEntries: cfg.CacheMaxEntries,
	})
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("closing cache", "error", err)
		}
	}()

	mail, err := newMailer(cfg)
	if err != nil {
		return fmt.Errorf("initializing mailer: %w", err)
	}

	h := api.NewHandler(api.Deps{
		Content:       content,
		Forms:         forms,
		Tokens:        auth.NewTokenIssuer(cfg.TokenSecret),
		Mailer:        mail,
		Cache:         cache.NewPublic(backend, cfg.CacheTTL),
		SecureCookies: !cfg.IsDevelopment(),
		Version:       build.Release(),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           newRouter(cfg, h),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      requestTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("listening", "addr", srv.Addr, "env", cfg.Env,
			"version", build.Release(), "commit", build.GitCommit)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down", "grace", shutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	slog.Info("server stopped")
	return err
}

func newRouter(cfg *config.Config, h *api.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h.Mount(r, api.RouteOptions{
		PublicLimit: middleware.NewRateLimiter(cfg.PublicRateLimit, cfg.PublicRateBurst).Middleware(),
		CSRF: middleware.CSRF(middleware.DefaultCSRFConfig(
			[]byte(cfg.TokenSecret), cfg.CORSOrigins, cfg.IsDevelopment())),
	})
	slog.Debug("routes mounted",
		"cors_origins", cfg.CORSOrigins,
		"public_rate_limit", cfg.PublicRateLimit,
		"public_rate_burst", cfg.PublicRateBurst,
	)
	return r
}

// openDatabase opens a pool and brings the schema up to date.
func openDatabase(ctx context.Context, name, driver, dsn string, schema store.Schema) (*store.DB, error) {
	db, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", name, err)
	}
	if err := store.Migrate(ctx, db, schema); err != nil {
		closeDatabase(name, db)
		return nil, fmt.Errorf("migrating %s database: %w", name, err)
	}
	slog.Info("database ready", "name", name, "driver", driver, "dialect", db.Dialect())
	return db, nil
}

func closeDatabase(name string, db *store.DB) {
	if err := db.Close(); err != nil {
		slog.Error("closing database", "name", name, "error", err)
	}
}

// newMailer relays through SMTP when configured and only logs otherwise.
func newMailer(cfg *config.Config) (*mailer.Service, error) {
	if !cfg.MailEnabled() {
		slog.Warn("SMTP not configured, notifications will only be logged")
		from := cfg.MailFrom
		if from == "" {
			from = "noreply@localhost.localdomain"
		}
		to := cfg.MailTo
		if to == "" {
			to = cfg.AdminEmail
		}
		return mailer.NewService(mailer.LogProvider{}, from, to)
	}

	provider := mailer.NewSMTPProvider(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})
	slog.Info("mailer initialized", "provider", provider.Name(), "host", cfg.SMTPHost)
	return mailer.NewService(provider, cfg.MailFrom, cfg.MailTo)
}
