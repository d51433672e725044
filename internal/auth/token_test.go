// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-that-is-at-least-32-bytes"

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	token, err := issuer.Issue(7, "admin@example.com", "Admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "admin@example.com" || claims.Name != "Admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("token should carry a jti")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != TokenTTL {
		t.Errorf("lifetime = %v, want %v", got, TokenTTL)
	}
}

func TestTokenIssuer_Expiry(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(testSecret).WithClock(func() time.Time { return issued })

	token, err := issuer.Issue(1, "admin@example.com", "Admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"just issued", issued, true},
		{"one hour later", issued.Add(time.Hour), true},
		{"just before expiry", issued.Add(TokenTTL - time.Minute), true},
		{"after expiry", issued.Add(TokenTTL + time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := tt.at
			_, err := issuer.WithClock(func() time.Time { return at }).Parse(token)
			if tt.valid && err != nil {
				t.Errorf("expected valid token, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	token, err := issuer.Issue(1, "admin@example.com", "Admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	otherIssuer := NewTokenIssuer("another-secret-key-that-is-32-bytes-long")
	foreign, err := otherIssuer.Issue(1, "admin@example.com", "Admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered signature", tampered},
		{"wrong secret", foreign},
		{"alg none", "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJpZCI6MX0."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
