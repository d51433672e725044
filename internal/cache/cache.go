// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache holds the read cache in front of the public content
// endpoints: services, portfolio items and published blog posts.
package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var (
	// ErrMiss is returned by Get for absent and expired keys.
	ErrMiss = errors.New("cache: miss")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("cache: closed")
)

// Cache is a byte-oriented key/value store with expiry, safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A non-positive ttl uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePrefix drops every key beginning with prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	Ping(ctx context.Context) error

	// Stats reports the backend name and process-local counters.
	Stats() Stats

	Close() error
}

// Stats is a snapshot of cache activity since start.
type Stats struct {
	Backend string  `json:"backend"`
	Entries int     `json:"entries,omitempty"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	HitRate float64 `json:"hit_rate"`
}

// counters are embedded by both backends.
type counters struct {
	hits, misses, sets atomic.Int64
}

func (c *counters) snapshot(backend string) Stats {
	s := Stats{
		Backend: backend,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Sets:    c.sets.Load(),
	}
	if lookups := s.Hits + s.Misses; lookups > 0 {
		s.HitRate = float64(s.Hits) / float64(lookups) * 100
	}
	return s
}
