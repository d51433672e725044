// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command ofolio serves the portfolio site API and the admin back-office.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/olegiv/ofolio-go/internal/config"
	"github.com/olegiv/ofolio-go/internal/version"
)

// Set with -ldflags "-X main.appVersion=..." at build time.
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func buildInfo() version.Info {
	return version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
}

// envHelp lists the variables shown by -help.
var envHelp = [][2]string{
	{"CONTENT_DB_DRIVER", "Content database driver: pgx|mysql|sqlite (default: pgx)"},
	{"CONTENT_DB_DSN", "Content database DSN (required)"},
	{"FORMS_DB_DRIVER", "Forms database driver: pgx|mysql|sqlite (default: mysql)"},
	{"FORMS_DB_DSN", "Forms database DSN (required)"},
	{"TOKEN_SECRET", "Admin token signing secret (required, min 32 bytes)"},
	{"SERVER_HOST", "Listen host (default: localhost)"},
	{"SERVER_PORT", "Listen port (default: 8080)"},
	{"ENV", "development|production (default: development)"},
	{"LOG_LEVEL", "debug|info|warn|error (default: info)"},
	{"SMTP_HOST", "SMTP relay; notifications are only logged when empty"},
	{"MAIL_FROM", "Notification sender address"},
	{"MAIL_TO", "Site owner address receiving notifications"},
	{"REDIS_URL", "Redis URL for the public read cache (default: in-memory)"},
	{"CACHE_TTL", "Public read cache lifetime (default: 5m)"},
	{"CORS_ORIGINS", "Comma-separated origins of the site and admin SPA"},
	{"PUBLIC_RATE_LIMIT", "Public requests per second per client (default: 5)"},
	{"DO_SEED", "Create the admin account from ADMIN_EMAIL/ADMIN_PASSWORD"},
}

func usage() {
	out := flag.CommandLine.Output()
	_, _ = fmt.Fprintf(out, "ofolio - portfolio site API and admin back-office\n\nUsage: %s [options]\n\nOptions:\n", os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintln(out, "\nEnvironment variables:")
	for _, v := range envHelp {
		_, _ = fmt.Fprintf(out, "  %-26s %s\n", config.EnvPrefix+v[0], v[1])
	}
}

func main() {
	var showVersion, showHelp bool
	flag.BoolVar(&showVersion, "version", false, "Print version information and exit")
	flag.BoolVar(&showVersion, "v", false, "Shorthand for -version")
	flag.BoolVar(&showHelp, "help", false, "Print this help and exit")
	flag.BoolVar(&showHelp, "h", false, "Shorthand for -help")
	envFile := flag.String("env-file", ".env", "Optional dotenv file loaded before reading the environment")
	flag.Usage = usage
	flag.Parse()

	switch {
	case showHelp:
		flag.Usage()
		return
	case showVersion:
		_, _ = fmt.Println(buildInfo())
		return
	}

	// Missing dotenv files are normal outside development.
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		slog.Warn("ignoring unreadable env file", "path", *envFile, "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, buildInfo()); err != nil {
		slog.Error("ofolio stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
}

// newLogger writes text for humans in development and JSON in production.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel, AddSource: cfg.LogLevel <= slog.LevelDebug}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts)).With("service", "ofolio", "env", strings.ToLower(cfg.Env))
}
