// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

const portfolioColumns = `id, images, category, title, description, long_description, client, project_date,
	services, budget, likes, link, features, created_at, updated_at`

func scanPortfolioItem(row scanner) (PortfolioItem, error) {
	var p PortfolioItem
	err := row.Scan(
		&p.ID, &p.Images, &p.Category, &p.Title, &p.Description, &p.LongDescription,
		&p.Client, &p.ProjectDate, &p.Services, &p.Budget, &p.Likes, &p.Link,
		&p.Features, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// ListPortfolioItems returns every portfolio item, newest first.
func (q *Queries) ListPortfolioItems(ctx context.Context) ([]PortfolioItem, error) {
	rows, err := q.db.query(ctx, `SELECT `+portfolioColumns+` FROM portfolio_items ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPortfolioItem)
}

// GetPortfolioItem returns the item with id or sql.ErrNoRows.
func (q *Queries) GetPortfolioItem(ctx context.Context, id int64) (PortfolioItem, error) {
	return scanPortfolioItem(q.db.queryRow(ctx, `SELECT `+portfolioColumns+` FROM portfolio_items WHERE id = ?`, id))
}

// CreatePortfolioItem inserts an item with zero likes and returns the stored row.
func (q *Queries) CreatePortfolioItem(ctx context.Context, arg PortfolioParams) (PortfolioItem, error) {
	ts := now()
	id, err := q.db.insert(ctx, `INSERT INTO portfolio_items (images, category, title, description,
		long_description, client, project_date, services, budget, likes, link, features, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?)`,
		arg.Images, arg.Category, arg.Title, arg.Description, arg.LongDescription, arg.Client,
		arg.ProjectDate, arg.Services, arg.Budget, arg.Link, arg.Features, ts, ts,
	)
	if err != nil {
		return PortfolioItem{}, err
	}
	return q.GetPortfolioItem(ctx, id)
}

// UpdatePortfolioItem replaces the mutable columns of an item and bumps updated_at.
// It returns sql.ErrNoRows when id does not exist.
func (q *Queries) UpdatePortfolioItem(ctx context.Context, id int64, arg PortfolioParams) (PortfolioItem, error) {
	err := q.db.execAffecting(ctx, `UPDATE portfolio_items SET images = ?, category = ?, title = ?,
		description = ?, long_description = ?, client = ?, project_date = ?, services = ?, budget = ?,
		link = ?, features = ?, updated_at = ? WHERE id = ?`,
		arg.Images, arg.Category, arg.Title, arg.Description, arg.LongDescription, arg.Client,
		arg.ProjectDate, arg.Services, arg.Budget, arg.Link, arg.Features, now(), id,
	)
	if err != nil {
		return PortfolioItem{}, err
	}
	return q.GetPortfolioItem(ctx, id)
}

// DeletePortfolioItem removes an item. It returns sql.ErrNoRows when id does not exist.
func (q *Queries) DeletePortfolioItem(ctx context.Context, id int64) error {
	return q.db.execAffecting(ctx, `DELETE FROM portfolio_items WHERE id = ?`, id)
}

// IncrementPortfolioLikes adds one like and returns the new total.
func (q *Queries) IncrementPortfolioLikes(ctx context.Context, id int64) (int64, error) {
	if err := q.db.execAffecting(ctx, `UPDATE portfolio_items SET likes = likes + 1 WHERE id = ?`, id); err != nil {
		return 0, err
	}
	var likes int64
	err := q.db.queryRow(ctx, `SELECT likes FROM portfolio_items WHERE id = ?`, id).Scan(&likes)
	return likes, err
}

// CountPortfolioItems returns the number of portfolio items.
func (q *Queries) CountPortfolioItems(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM portfolio_items`)
}
