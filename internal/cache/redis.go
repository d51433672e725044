// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint for SCAN during prefix deletes.
const scanBatch = 200

// RedisOptions configures a RedisCache. Zero timeouts keep the client
// defaults from the URL.
type RedisOptions struct {
	URL         string // redis://[:password@]host:port/db
	Namespace   string // prepended to every key, e.g. "ofolio:"
	DefaultTTL  time.Duration
	PoolSize    int
	DialTimeout time.Duration
	IOTimeout   time.Duration
}

// RedisCache is a Cache shared by every API instance behind one Redis.
type RedisCache struct {
	counters

	client     *redis.Client
	namespace  string
	defaultTTL time.Duration
	closed     atomic.Bool
}

// NewRedisCache dials Redis and fails unless it answers PING.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}
	ro, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	if opts.PoolSize > 0 {
		ro.PoolSize = opts.PoolSize
	}
	if opts.DialTimeout > 0 {
		ro.DialTimeout = opts.DialTimeout
	}
	if opts.IOTimeout > 0 {
		ro.ReadTimeout, ro.WriteTimeout = opts.IOTimeout, opts.IOTimeout
	}

	rc := &RedisCache{
		client:     redis.NewClient(ro),
		namespace:  opts.Namespace,
		defaultTTL: opts.DefaultTTL,
	}

	dial := ro.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()
	if err := rc.client.Ping(pingCtx).Err(); err != nil {
		_ = rc.client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", SanitizeRedisURL(opts.URL), err)
	}
	return rc, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	val, err := c.client.Get(ctx, c.namespace+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.misses.Add(1)
		return nil, ErrMiss
	case err != nil:
		return nil, err
	}
	c.hits.Add(1)
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.namespace+key, value, ttl).Err(); err != nil {
		return err
	}
	c.sets.Add(1)
	return nil
}

// DeletePrefix walks the keyspace with SCAN so large caches never block the
// server the way KEYS would, unlinking each batch in one round trip.
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	iter := c.client.Scan(ctx, 0, c.namespace+prefix+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.client.Unlink(ctx, batch...).Err()
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.client.Ping(ctx).Err()
}

// Stats counts only what this process observed.
func (c *RedisCache) Stats() Stats {
	return c.snapshot("redis")
}

// Close releases the connection pool. Repeated calls are no-ops.
func (c *RedisCache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
