// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
)

// CreateAdminUserParams holds the columns of a new admin account.
type CreateAdminUserParams struct {
	Email        string
	PasswordHash string
	Name         string
}

func scanAdminUser(row scanner) (AdminUser, error) {
	var u AdminUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	return u, err
}

// GetAdminUserByEmail looks up an admin case-insensitively. It returns sql.ErrNoRows when absent.
func (q *Queries) GetAdminUserByEmail(ctx context.Context, email string) (AdminUser, error) {
	return scanAdminUser(q.db.queryRow(ctx,
		`SELECT id, email, password_hash, name, created_at FROM admin_users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email))))
}

// GetAdminUser returns the admin with id or sql.ErrNoRows.
func (q *Queries) GetAdminUser(ctx context.Context, id int64) (AdminUser, error) {
	return scanAdminUser(q.db.queryRow(ctx,
		`SELECT id, email, password_hash, name, created_at FROM admin_users WHERE id = ?`, id))
}

// CreateAdminUser inserts an admin account. Emails are stored lower-cased.
func (q *Queries) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (AdminUser, error) {
	id, err := q.db.insert(ctx,
		`INSERT INTO admin_users (email, password_hash, name, created_at) VALUES (?, ?, ?, ?)`,
		strings.ToLower(strings.TrimSpace(arg.Email)), arg.PasswordHash, arg.Name, now(),
	)
	if err != nil {
		return AdminUser{}, err
	}
	return q.GetAdminUser(ctx, id)
}

// UpdateAdminPasswordHash replaces the stored hash of admin id.
func (q *Queries) UpdateAdminPasswordHash(ctx context.Context, id int64, hash string) error {
	return q.db.execAffecting(ctx, `UPDATE admin_users SET password_hash = ? WHERE id = ?`, hash, id)
}
