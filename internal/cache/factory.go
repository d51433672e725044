// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"net/url"
	"time"
)

// Config selects and tunes the cache backend.
type Config struct {
	// RedisURL enables Redis when set. Empty means in-memory.
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
	MaxEntries int
}

// New builds the backend described by cfg. An unreachable Redis is logged
// and replaced by the memory cache: public reads still work, just per
// instance.
func New(ctx context.Context, cfg Config) Cache {
	if cfg.RedisURL != "" {
		namespace := cfg.Prefix
		if namespace == "" {
			namespace = "ofolio:"
		}
		rc, err := NewRedisCache(ctx, RedisOptions{
			URL:         cfg.RedisURL,
			Namespace:   namespace,
			DefaultTTL:  cfg.DefaultTTL,
			PoolSize:    10,
			DialTimeout: 5 * time.Second,
			IOTimeout:   3 * time.Second,
		})
		if err == nil {
			slog.Info("cache initialized", "backend", "redis", "url", SanitizeRedisURL(cfg.RedisURL))
			return rc
		}
		slog.Warn("redis unavailable, using memory cache", "error", err)
	}

	slog.Info("cache initialized", "backend", "memory", "max_entries", cfg.MaxEntries)
	return NewMemoryCache(MemoryOptions{DefaultTTL: cfg.DefaultTTL, MaxEntries: cfg.MaxEntries})
}

// SanitizeRedisURL masks the password of a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	return u.Redacted()
}
