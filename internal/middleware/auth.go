// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/ofolio-go/internal/auth"
)

// AdminCookieName is the cookie carrying the admin session token.
const AdminCookieName = "admin-token"

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyAdmin holds the *auth.Claims of the authenticated admin.
const ContextKeyAdmin ContextKey = "admin"

// RequireAdmin rejects requests without a valid admin token cookie with 401
// and stores the token claims in the request context otherwise.
func RequireAdmin(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AdminCookieName)
			if err != nil || cookie.Value == "" {
				WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
				return
			}

			claims, err := tokens.Parse(cookie.Value)
			if err != nil {
				slog.Debug("rejected admin token", "error", err, "path", r.URL.Path)
				WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid or expired token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin returns the claims stored by RequireAdmin, or nil.
func GetAdmin(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(ContextKeyAdmin).(*auth.Claims)
	return claims
}

// SetAdminCookie writes the session token cookie. secure should be false only
// in development over plain HTTP.
func SetAdminCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAdminCookie expires the session token cookie.
func ClearAdminCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
