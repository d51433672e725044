// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
)

var testCSRFKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig(t *testing.T) {
	cfg := DefaultCSRFConfig(testCSRFKey, []string{
		"https://admin.example.com",
		" http://localhost:5173 ",
		"*",
		"https://admin.example.com",
		"portfolio.example.com",
	}, false)

	want := []string{"admin.example.com", "localhost:5173", "portfolio.example.com"}
	if !slices.Equal(cfg.TrustedHosts, want) {
		t.Errorf("TrustedHosts = %v, want %v", cfg.TrustedHosts, want)
	}

	dev := DefaultCSRFConfig(testCSRFKey, []string{"http://localhost:5173"}, true)
	if !slices.Contains(dev.TrustedHosts, "localhost:3000") {
		t.Errorf("dev TrustedHosts = %v, want localhost dev servers", dev.TrustedHosts)
	}
	if n := len(dev.TrustedHosts); n != len(devOrigins) {
		t.Errorf("dev TrustedHosts has %d entries, want %d without duplicates", n, len(devOrigins))
	}
	for _, h := range dev.TrustedHosts {
		if strings.Contains(h, "://") {
			t.Errorf("trusted host %q should not carry a scheme", h)
		}
	}
}

func TestCSRF(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testCSRFKey, []string{"https://admin.example.com"}, false))(simpleOKHandler)

	tests := []struct {
		name    string
		method  string
		headers map[string]string
		want    int
	}{
		{"cross-site read", http.MethodGet, map[string]string{"Sec-Fetch-Site": "cross-site"}, http.StatusOK},
		{"same-origin write", http.MethodPost, map[string]string{"Sec-Fetch-Site": "same-origin"}, http.StatusOK},
		{"write without fetch metadata", http.MethodDelete, nil, http.StatusOK},
		{"cross-site write", http.MethodPost, map[string]string{"Sec-Fetch-Site": "cross-site", "Origin": "https://evil.example"}, http.StatusForbidden},
		{"cross-site delete", http.MethodDelete, map[string]string{"Sec-Fetch-Site": "cross-site", "Origin": "https://evil.example"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://api.example.com/api/admin/services/1", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("Status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusForbidden {
				if got := decodeAPIError(t, rr).Error.Code; got != CodeForbidden {
					t.Errorf("code = %q, want %q", got, CodeForbidden)
				}
			}
		})
	}
}

func TestHostOf(t *testing.T) {
	tests := map[string]string{
		"https://admin.example.com":      "admin.example.com",
		"http://localhost:5173":          "localhost:5173",
		"admin.example.com":              "admin.example.com",
		"*":                              "",
		"  ":                             "",
		"https://admin.example.com/path": "admin.example.com",
	}
	for in, want := range tests {
		if got := hostOf(in); got != want {
			t.Errorf("hostOf(%q) = %q, want %q", in, got, want)
		}
	}
}
