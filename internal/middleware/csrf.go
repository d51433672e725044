// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"cmp"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"filippo.io/csrf/gorilla"
)

// devOrigins are the admin SPA dev servers trusted outside production.
var devOrigins = []string{"localhost:3000", "localhost:5173", "localhost:8080", "127.0.0.1:8080"}

// CSRFConfig configures cross-site request rejection for the admin API.
// The check relies on Fetch metadata (Sec-Fetch-Site, Origin), so the admin
// SPA sends no token.
type CSRFConfig struct {
	// Key satisfies the gorilla-compatible constructor; no tokens are minted.
	Key []byte

	// TrustedHosts are host[:port] values whose pages may call the admin API.
	TrustedHosts []string
}

// DefaultCSRFConfig trusts the hosts of the configured CORS origins, plus the
// usual dev servers when isDev is set.
func DefaultCSRFConfig(key []byte, corsOrigins []string, isDev bool) CSRFConfig {
	var hosts []string
	for _, origin := range corsOrigins {
		if h := hostOf(origin); h != "" && !slices.Contains(hosts, h) {
			hosts = append(hosts, h)
		}
	}
	if isDev {
		for _, h := range devOrigins {
			if !slices.Contains(hosts, h) {
				hosts = append(hosts, h)
			}
		}
	}
	return CSRFConfig{Key: key, TrustedHosts: hosts}
}

// hostOf reduces "https://admin.example.com" to "admin.example.com". Bare
// hosts pass through and wildcards are dropped.
func hostOf(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" || origin == "*" {
		return ""
	}
	if !strings.Contains(origin, "://") {
		return origin
	}
	if u, err := url.Parse(origin); err == nil {
		return u.Host
	}
	return ""
}

// CSRF rejects browser-issued cross-site writes with a JSON 403. Safe
// methods and requests without Fetch metadata, such as curl, pass.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{csrf.ErrorHandler(http.HandlerFunc(rejectCrossSite))}
	if len(cfg.TrustedHosts) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedHosts))
	}
	return csrf.Protect(cfg.Key, opts...)
}

func rejectCrossSite(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("cross-site admin request rejected",
		"method", r.Method,
		"path", r.URL.Path,
		"reason", reason,
		"origin", cmp.Or(r.Header.Get("Origin"), "-"),
		"sec_fetch_site", cmp.Or(r.Header.Get("Sec-Fetch-Site"), "-"),
	)
	WriteAPIError(w, http.StatusForbidden, CodeForbidden, "Cross-site request rejected", nil)
}
