// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type item struct {
	Title string `json:"title"`
}

func TestFetch_LoadsOnceThenServesFromCache(t *testing.T) {
	c, _ := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Hour})
	p := NewPublic(c, 0)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]item, error) {
		calls++
		return []item{{Title: "one"}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(ctx, p, "services", load)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if len(got) != 1 || got[0].Title != "one" {
			t.Fatalf("Fetch() = %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}
	if _, err := c.Get(ctx, PublicPrefix+"services"); err != nil {
		t.Errorf("entry should be stored under the public prefix: %v", err)
	}
}

func TestFetch_ConcurrentMissesShareOneLoad(t *testing.T) {
	c, _ := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Hour})
	p := NewPublic(c, 0)

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (item, error) {
		calls.Add(1)
		<-release
		return item{Title: "shared"}, nil
	}

	var wg sync.WaitGroup
	results := make([]item, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Fetch(context.Background(), p, "portfolio", load)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("load called %d times, want 1", n)
	}
	for i, r := range results {
		if r.Title != "shared" {
			t.Errorf("result %d = %+v", i, r)
		}
	}
}

func TestFetch_InvalidateForcesReload(t *testing.T) {
	c, _ := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Hour})
	p := NewPublic(c, 0)
	ctx := context.Background()

	title := "before"
	load := func(context.Context) (item, error) { return item{Title: title}, nil }

	if _, err := Fetch(ctx, p, "blog:post:a", load); err != nil {
		t.Fatal(err)
	}
	_ = c.Set(ctx, "admin:x", []byte("keep"), 0)

	title = "after"
	p.Invalidate(ctx)

	got, err := Fetch(ctx, p, "blog:post:a", load)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "after" {
		t.Errorf("Title = %q, want reloaded value", got.Title)
	}
	if _, err := c.Get(ctx, "admin:x"); err != nil {
		t.Error("Invalidate should only drop public entries")
	}
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	c, _ := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Hour})
	p := NewPublic(c, 0)

	boom := errors.New("boom")
	if _, err := Fetch(context.Background(), p, "portfolio", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want load error", err)
	}
	if c.Len() != 0 {
		t.Error("failed load should not be cached")
	}
}

func TestFetch_UndecodableEntryIsReloaded(t *testing.T) {
	c, _ := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Hour})
	p := NewPublic(c, 0)
	ctx := context.Background()
	_ = c.Set(ctx, PublicPrefix+"reviews", []byte("{broken"), 0)

	got, err := Fetch(ctx, p, "reviews", func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("Fetch() = %d, %v; want 7, nil", got, err)
	}
}

func TestFetch_ClosedCacheFallsThrough(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	_ = c.Close()
	p := NewPublic(c, 0)

	got, err := Fetch(context.Background(), p, "reviews", func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("Fetch() = %d, %v; want 7, nil", got, err)
	}
}

func TestPublic_Probe(t *testing.T) {
	c, _ := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Hour})
	p := NewPublic(c, 0)

	s, err := p.Probe(context.Background())
	if err != nil || s.Backend != "memory" {
		t.Errorf("Probe() = %+v, %v", s, err)
	}

	_ = c.Close()
	if _, err := p.Probe(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Probe() after Close = %v, want ErrClosed", err)
	}
}

func TestPublic_Nil(t *testing.T) {
	var p *Public
	got, err := Fetch(context.Background(), p, "k", func(context.Context) (string, error) { return "v", nil })
	if err != nil || got != "v" {
		t.Errorf("Fetch() = %q, %v", got, err)
	}
	p.Invalidate(context.Background())
	if s, err := p.Probe(context.Background()); err != nil || s.Backend != "none" {
		t.Errorf("Probe() = %+v, %v", s, err)
	}
}

func TestFetch_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	c, _ := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Hour})
	p := NewPublic(c, 0)

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(ctx context.Context) (item, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return item{Title: "loaded"}, nil
		case <-ctx.Done():
			return item{}, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := Fetch(firstCtx, p, "services", load)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   item
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := Fetch(context.Background(), p, "services", load)
		second <- result{v, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("cancelled caller err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting on the shared load")
	}

	close(release)
	got := <-second
	if got.err != nil || got.v.Title != "loaded" {
		t.Errorf("second caller = %+v, %v; want loaded value", got.v, got.err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("load called %d times, want 1", n)
	}
	if _, err := c.Get(context.Background(), PublicPrefix+"services"); err != nil {
		t.Errorf("shared load result should be cached: %v", err)
	}
}

func TestFetch_LoadOverlappingInvalidateIsNotStored(t *testing.T) {
	c, _ := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Hour})
	p := NewPublic(c, 0)
	ctx := context.Background()

	var mu sync.Mutex
	current := "old"
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(context.Context) (item, error) {
		mu.Lock()
		v := current
		mu.Unlock()
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return item{Title: v}, nil
	}

	inFlight := make(chan item, 1)
	go func() {
		v, _ := Fetch(ctx, p, "blog", load)
		inFlight <- v
	}()
	<-started

	mu.Lock()
	current = "new"
	mu.Unlock()
	p.Invalidate(ctx)

	// Readers arriving after the invalidation must not join the older load.
	got, err := Fetch(ctx, p, "blog", load)
	if err != nil || got.Title != "new" {
		t.Fatalf("Fetch() after Invalidate = %+v, %v; want new", got, err)
	}

	close(release)
	if v := <-inFlight; v.Title != "old" {
		t.Errorf("in-flight caller = %q, want the value it loaded", v.Title)
	}

	got, err = Fetch(ctx, p, "blog", load)
	if err != nil || got.Title != "new" {
		t.Errorf("cached value = %+v, %v; stale load overwrote the fresh entry", got, err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("load called %d times, want 2", n)
	}
}
