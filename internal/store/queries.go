// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
)

// Queries runs the hand-written statements of this package against one pool.
// Content queries expect a pool migrated with SchemaContent, form queries a
// pool migrated with SchemaForms.
type Queries struct {
	db *DB
}

// New returns Queries bound to db.
func New(db *DB) *Queries {
	return &Queries{db: db}
}

// DB returns the underlying pool.
func (q *Queries) DB() *DB {
	return q.db
}

// Ping verifies the pool is reachable.
func (q *Queries) Ping(ctx context.Context) error {
	return q.db.PingContext(ctx)
}

// count runs a COUNT(*) query.
func (q *Queries) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := q.db.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// exists reports whether query returns at least one row.
func (q *Queries) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := q.db.queryRow(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan and closes rows.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer func() { _ = rows.Close() }()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
