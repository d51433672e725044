// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a MemoryCache built without MaxEntries.
const DefaultMaxEntries = 1024

// MemoryOptions configures a MemoryCache.
type MemoryOptions struct {
	DefaultTTL time.Duration
	MaxEntries int
}

// MemoryCache is an in-process LRU with per-entry expiry. Expired entries
// are dropped lazily when read or when the cache needs room.
type MemoryCache struct {
	counters

	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time

	mu     sync.Mutex
	order  *list.List // front is most recently used
	items  map[string]*list.Element
	closed bool
}

type memoryItem struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache(opts MemoryOptions) *MemoryCache {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		defaultTTL: opts.DefaultTTL,
		maxEntries: opts.MaxEntries,
		now:        time.Now,
		order:      list.New(),
		items:      make(map[string]*list.Element),
	}
}

// Get returns a copy of the stored value.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}

	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return nil, ErrMiss
	}
	it := el.Value.(*memoryItem)
	if !c.now().Before(it.expiresAt) {
		c.removeLocked(el)
		c.misses.Add(1)
		return nil, ErrMiss
	}

	c.order.MoveToFront(el)
	c.hits.Add(1)
	return append([]byte(nil), it.value...), nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	it := &memoryItem{key: key, value: append([]byte(nil), value...), expiresAt: c.now().Add(ttl)}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	if el, ok := c.items[key]; ok {
		el.Value = it
		c.order.MoveToFront(el)
	} else {
		c.items[key] = c.order.PushFront(it)
		c.shrinkLocked()
	}
	c.sets.Add(1)
	return nil
}

func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	for key, el := range c.items {
		if strings.HasPrefix(key, prefix) {
			c.removeLocked(el)
		}
	}
	return nil
}

// Ping fails only after Close.
func (c *MemoryCache) Ping(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *MemoryCache) Stats() Stats {
	s := c.snapshot("memory")
	s.Entries = c.Len()
	return s
}

// Len counts stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Close drops all entries. Further calls fail with ErrClosed.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.items = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

// shrinkLocked makes room by first discarding expired entries and then the
// least recently used ones.
func (c *MemoryCache) shrinkLocked() {
	if len(c.items) <= c.maxEntries {
		return
	}
	now := c.now()
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*memoryItem).expiresAt) {
			c.removeLocked(el)
		}
		el = prev
	}
	for len(c.items) > c.maxEntries {
		c.removeLocked(c.order.Back())
	}
}

func (c *MemoryCache) removeLocked(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*memoryItem).key)
}

var _ Cache = (*MemoryCache)(nil)
