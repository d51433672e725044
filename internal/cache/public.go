// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// PublicPrefix namespaces every public read entry.
const PublicPrefix = "public:"

// Public caches JSON-encoded public read results. Concurrent misses on the
// same key share one load. A nil *Public is valid and caches nothing.
//
// Every Invalidate starts a new generation. A load only stores its result
// if no invalidation happened while it ran, and loads of different
// generations are never shared.
type Public struct {
	cache  Cache
	ttl    time.Duration
	flight singleflight.Group

	// mu orders generation bumps against stores.
	mu  sync.RWMutex
	gen uint64
}

// NewPublic wraps c. A zero ttl uses the backend default.
func NewPublic(c Cache, ttl time.Duration) *Public {
	return &Public{cache: c, ttl: ttl}
}

// Invalidate drops every public read entry. Failures are only logged since
// stale entries still age out on their TTL.
func (p *Public) Invalidate(ctx context.Context) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.gen++
	p.mu.Unlock()

	if err := p.cache.DeletePrefix(ctx, PublicPrefix); err != nil {
		slog.Warn("public cache invalidation failed", "error", err)
	}
}

// Probe pings the backend and returns its counters for the health report.
func (p *Public) Probe(ctx context.Context) (Stats, error) {
	if p == nil {
		return Stats{Backend: "none"}, nil
	}
	return p.cache.Stats(), p.cache.Ping(ctx)
}

// Fetch returns the value cached under key, or calls load and caches what it
// returns. Backend failures degrade to calling load. Load errors are
// returned as is and never cached.
//
// A shared load runs detached from the caller's cancellation so one
// departing client cannot fail the others waiting on it. Each caller still
// stops waiting when its own ctx is done.
func Fetch[T any](ctx context.Context, p *Public, key string, load func(context.Context) (T, error)) (T, error) {
	if p == nil {
		return load(ctx)
	}
	key = PublicPrefix + key

	if v, ok := lookup[T](ctx, p.cache, key); ok {
		return v, nil
	}

	gen := p.generation()
	loadCtx := context.WithoutCancel(ctx)
	ch := p.flight.DoChan(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		v, err := load(loadCtx)
		if err != nil {
			return v, err
		}
		p.storeIfCurrent(loadCtx, gen, key, v)
		return v, nil
	})

	select {
	case res := <-ch:
		v, _ := res.Val.(T)
		return v, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (p *Public) generation() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gen
}

// storeIfCurrent caches v unless an invalidation started after gen. Holding
// the read lock means a concurrent Invalidate either sees this entry and
// deletes it, or bumps the generation first and this store is skipped.
func (p *Public) storeIfCurrent(ctx context.Context, gen uint64, key string, v any) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.gen != gen {
		slog.Debug("dropping cache fill from before invalidation", "key", key)
		return
	}
	store(ctx, p.cache, key, v, p.ttl)
}

func lookup[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var v T
	raw, err := c.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return v, false
	}
	return v, true
}

func store(ctx context.Context, c Cache, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.Set(ctx, key, raw, ttl); err != nil && !errors.Is(err, ErrClosed) {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}
