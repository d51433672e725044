// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

const reviewColumns = `id, name, email, rating, comment, created_at`

func scanReview(row scanner) (Review, error) {
	var r Review
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Rating, &r.Comment, &r.CreatedAt)
	return r, err
}

// ListReviews returns reviews, newest first.
func (q *Queries) ListReviews(ctx context.Context) ([]Review, error) {
	rows, err := q.db.query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReview)
}

// ListRecentReviews returns at most limit reviews, newest first.
func (q *Queries) ListRecentReviews(ctx context.Context, limit int) ([]Review, error) {
	rows, err := q.db.query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReview)
}

// GetReview returns the review with id or sql.ErrNoRows.
func (q *Queries) GetReview(ctx context.Context, id int64) (Review, error) {
	return scanReview(q.db.queryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id))
}

// CreateReview records a review.
func (q *Queries) CreateReview(ctx context.Context, arg CreateReviewParams) (Review, error) {
	id, err := q.db.insert(ctx, `INSERT INTO reviews (name, email, rating, comment, created_at) VALUES (?, ?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.Rating, arg.Comment, now(),
	)
	if err != nil {
		return Review{}, err
	}
	return q.GetReview(ctx, id)
}

// DeleteReview removes a review. It returns sql.ErrNoRows when id does not exist.
func (q *Queries) DeleteReview(ctx context.Context, id int64) error {
	return q.db.execAffecting(ctx, `DELETE FROM reviews WHERE id = ?`, id)
}

// CountReviews returns the number of reviews.
func (q *Queries) CountReviews(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM reviews`)
}
