// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"net/http"
)

// SecurityHeadersConfig tunes SecurityHeaders.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS so plain-HTTP localhost keeps working.
	IsDevelopment bool

	// HSTSMaxAge in seconds. Zero disables HSTS.
	HSTSMaxAge int

	ReferrerPolicy string

	// CrossOriginResourcePolicy is sent as Cross-Origin-Resource-Policy.
	// The public site and admin SPA live on other origins, so the default is
	// cross-origin; CORS still decides who may read the body.
	CrossOriginResourcePolicy string
}

// DefaultSecurityHeadersConfig returns the production settings, relaxed for
// development when isDev is set.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	return SecurityHeadersConfig{
		IsDevelopment:             isDev,
		HSTSMaxAge:                365 * 24 * 60 * 60,
		ReferrerPolicy:            "no-referrer",
		CrossOriginResourcePolicy: "cross-origin",
	}
}

// apiHeaders are fixed for every JSON response: nothing is rendered,
// framed or sniffed.
var apiHeaders = [][2]string{
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"X-Frame-Options", "DENY"},
	{"X-Content-Type-Options", "nosniff"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=()"},
}

// SecurityHeaders sets the response headers of a JSON API.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	headers := append([][2]string(nil), apiHeaders...)
	if cfg.ReferrerPolicy != "" {
		headers = append(headers, [2]string{"Referrer-Policy", cfg.ReferrerPolicy})
	}
	if cfg.CrossOriginResourcePolicy != "" {
		headers = append(headers, [2]string{"Cross-Origin-Resource-Policy", cfg.CrossOriginResourcePolicy})
	}
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		headers = append(headers, [2]string{"Strict-Transport-Security", fmt.Sprintf("max-age=%d; includeSubDomains", cfg.HSTSMaxAge)})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range headers {
				h.Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore keeps admin responses out of browser and proxy caches.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}
