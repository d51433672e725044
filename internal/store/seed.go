// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/ofolio-go/internal/auth"
)

// AdminSeed is the bootstrap account created on first start.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// SeedAdmin makes sure the bootstrap admin exists. An existing account with
// the same email is returned untouched, so restarting with a different
// password never resets it. created reports whether a row was inserted.
func SeedAdmin(ctx context.Context, q *Queries, seed AdminSeed) (user AdminUser, created bool, err error) {
	email := strings.TrimSpace(seed.Email)
	if email == "" || seed.Password == "" {
		return AdminUser{}, false, errors.New("admin seed needs an email and a password")
	}

	user, err = q.GetAdminUserByEmail(ctx, email)
	switch {
	case err == nil:
		slog.Info("admin user already exists, skipping seed", "id", user.ID)
		return user, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return AdminUser{}, false, fmt.Errorf("looking up admin %s: %w", email, err)
	}

	hash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return AdminUser{}, false, fmt.Errorf("hashing admin password: %w", err)
	}

	name := strings.TrimSpace(seed.Name)
	if name == "" {
		name = "Administrator"
	}
	user, err = q.CreateAdminUser(ctx, CreateAdminUserParams{Email: email, PasswordHash: hash, Name: name})
	if err != nil {
		return AdminUser{}, false, fmt.Errorf("creating admin %s: %w", email, err)
	}

	slog.Info("seeded admin user", "id", user.ID, "email", user.Email)
	return user, true, nil
}
