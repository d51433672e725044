// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Timeout cancels the request context after d. When the handler has not
// started its response by then, the client gets a JSON 503 and anything the
// handler writes afterwards is discarded.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			dw := newDeadlineWriter(w)
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
						return
					}
					close(done)
				}()
				next.ServeHTTP(dw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case p := <-panicked:
				// Re-raise on the request goroutine so chi's Recoverer sees it.
				panic(p)
			case <-ctx.Done():
				if dw.expire() {
					slog.Warn("request timed out", "method", r.Method, "path", r.URL.Path, "after", d)
					WriteAPIError(w, http.StatusServiceUnavailable, CodeTimeout, "Request timeout", nil)
				}
			}
		})
	}
}

// deadlineWriter keeps the handler's headers private until it commits a
// status, so a timeout response never races with the handler.
type deadlineWriter struct {
	w      http.ResponseWriter
	header http.Header

	mu        sync.Mutex
	committed bool
	expired   bool
}

func newDeadlineWriter(w http.ResponseWriter) *deadlineWriter {
	return &deadlineWriter{w: w, header: make(http.Header)}
}

func (dw *deadlineWriter) Header() http.Header {
	return dw.header
}

func (dw *deadlineWriter) WriteHeader(code int) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.commitLocked(code)
}

func (dw *deadlineWriter) Write(b []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.expired {
		return 0, http.ErrHandlerTimeout
	}
	dw.commitLocked(http.StatusOK)
	return dw.w.Write(b)
}

// Flush lets streaming handlers push partial output.
func (dw *deadlineWriter) Flush() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.expired {
		return
	}
	dw.commitLocked(http.StatusOK)
	if f, ok := dw.w.(http.Flusher); ok {
		f.Flush()
	}
}

func (dw *deadlineWriter) commitLocked(code int) {
	if dw.expired || dw.committed {
		return
	}
	dst := dw.w.Header()
	for k, v := range dw.header {
		dst[k] = v
	}
	dw.committed = true
	dw.w.WriteHeader(code)
}

// expire marks the writer dead and reports whether the caller may still
// write the timeout response.
func (dw *deadlineWriter) expire() bool {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.expired = true
	return !dw.committed
}
