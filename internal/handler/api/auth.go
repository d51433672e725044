// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/ofolio-go/internal/auth"
	"github.com/olegiv/ofolio-go/internal/middleware"
)

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminInfo is the public view of an authenticated admin.
type AdminInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionResponse is returned by login and verify.
type SessionResponse struct {
	User AdminInfo `json:"user"`
}

const invalidCredentials = "Invalid email or password"

// Login checks the credentials and sets the admin session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fe := fieldErrors{}
	fe.require("email", req.Email)
	fe.require("password", req.Password)
	if len(fe) > 0 {
		WriteValidationError(w, fe)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.content.GetAdminUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Info("admin login failed", "email", email, "reason", "unknown user")
			WriteUnauthorized(w, invalidCredentials)
			return
		}
		slog.Error("failed to load admin user", "error", err)
		WriteInternalError(w, "Login failed")
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		slog.Warn("admin password hash could not be checked", "user_id", user.ID, "error", err)
	}
	if !ok {
		slog.Info("admin login failed", "email", email, "reason", "wrong password")
		WriteUnauthorized(w, invalidCredentials)
		return
	}

	if auth.NeedsRehash(user.PasswordHash) {
		h.upgradePasswordHash(r.Context(), user.ID, req.Password)
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		slog.Error("failed to issue admin token", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Login failed")
		return
	}

	middleware.SetAdminCookie(w, token, h.secureCookies)
	slog.Info("admin logged in", "user_id", user.ID)
	WriteJSON(w, http.StatusOK, SessionResponse{
		User: AdminInfo{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

// Logout clears the admin session cookie. Tokens are stateless, so a copied
// token stays valid until it expires.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	middleware.ClearAdminCookie(w, h.secureCookies)
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Verify returns the admin identified by the session cookie.
// It must be mounted behind middleware.RequireAdmin.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetAdmin(r)
	if claims == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}
	WriteJSON(w, http.StatusOK, SessionResponse{
		User: AdminInfo{ID: claims.UserID, Email: claims.Email, Name: claims.Name},
	})
}

// upgradePasswordHash re-hashes a legacy password after a successful login.
// Failure is logged only; the old hash keeps working.
func (h *Handler) upgradePasswordHash(ctx context.Context, userID int64, password string) {
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = h.content.UpdateAdminPasswordHash(ctx, userID, hash)
	}
	if err != nil {
		slog.Warn("failed to upgrade admin password hash", "user_id", userID, "error", err)
		return
	}
	slog.Info("upgraded admin password hash", "user_id", userID)
}
