// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/olegiv/ofolio-go/internal/cache"
	"github.com/olegiv/ofolio-go/internal/store"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// healthCheckTimeout bounds each database ping.
const healthCheckTimeout = 2 * time.Second

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version,omitempty"`
	Checks    map[string]Check `json:"checks"`
}

// Check is a single health check result.
type Check struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
	Cache   *cache.Stats `json:"cache,omitempty"`
}

// Health handles GET /health. It pings both databases and answers 503 when
// either is unreachable. The cache is reported but never fails the check:
// reads fall through to the database without it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"content_db": pingCheck(r.Context(), h.content),
		"forms_db":   pingCheck(r.Context(), h.forms),
	}

	status := statusHealthy
	for _, c := range checks {
		if c.Status != statusHealthy {
			status = statusDegraded
		}
	}
	checks["cache"] = h.cacheCheck(r.Context())

	code := http.StatusOK
	if status != statusHealthy {
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, HealthStatus{
		Status:    status,
		Timestamp: h.now().UTC(),
		Uptime:    h.now().Sub(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	})
}

// Liveness handles GET /health/live.
func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func pingCheck(ctx context.Context, q *store.Queries) Check {
	if q == nil {
		return Check{Status: "unhealthy", Message: "not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	if err := q.Ping(ctx); err != nil {
		return Check{Status: "unhealthy", Message: "database unreachable"}
	}
	return Check{Status: statusHealthy, Latency: time.Since(start).Round(time.Microsecond).String()}
}

func (h *Handler) cacheCheck(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	stats, err := h.cache.Probe(ctx)
	if err != nil {
		return Check{Status: "unhealthy", Message: "cache unreachable", Cache: &stats}
	}
	return Check{Status: statusHealthy, Cache: &stats}
}
