// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ofolio-go/internal/middleware"
)

func TestMount_PublicRateLimit(t *testing.T) {
	env := newTestEnv(t)

	r := chi.NewRouter()
	env.h.Mount(r, RouteOptions{
		PublicLimit: middleware.NewRateLimiter(0.001, 2).Middleware(),
	})

	serve := func(req *http.Request) int {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodGet, "/api/services", nil)))
	assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodGet, "/api/services", nil)))
	assert.Equal(t, http.StatusTooManyRequests, serve(httptest.NewRequest(http.MethodGet, "/api/services", nil)))

	// Admin and health routes are outside the public limit.
	assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodGet, "/health/live", nil)))
	req := httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	req.AddCookie(env.adminCookie(t))
	assert.Equal(t, http.StatusOK, serve(req))
}

func TestMount_CSRFRejectsCrossSiteAdminWrites(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	r := chi.NewRouter()
	env.h.Mount(r, RouteOptions{
		CSRF: middleware.CSRF(middleware.DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), nil, false)),
	})

	body := map[string]string{"email": testAdminEmail, "password": testAdminPassword}

	req := newJSONRequest(t, http.MethodPost, "/api/admin/login", body)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = newJSONRequest(t, http.MethodPost, "/api/admin/login", body)
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Public forms are not subject to the admin CSRF check.
	req = newJSONRequest(t, http.MethodPost, "/api/reviews", map[string]any{"name": "A", "rating": 5, "comment": "ok"})
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMount_UnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, middleware.CodeNotFound, unmarshalError(t, rec).Error.Code)
}

func TestMount_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodDelete, "/api/services", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, middleware.CodeMethodNotAllowed, unmarshalError(t, rec).Error.Code)
}
