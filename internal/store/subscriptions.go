// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/ofolio-go/internal/model"
)

func scanSubscription(row scanner) (model.SubscriptionRecord, error) {
	var s model.SubscriptionRecord
	err := row.Scan(&s.ID, &s.Email, &s.CreatedAt)
	return s, err
}

// ListSubscriptions returns subscriptions, newest first.
func (q *Queries) ListSubscriptions(ctx context.Context) ([]model.SubscriptionRecord, error) {
	rows, err := q.db.query(ctx, `SELECT id, email, created_at FROM subscriptions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSubscription)
}

// ListRecentSubscriptions returns at most limit subscriptions, newest first.
func (q *Queries) ListRecentSubscriptions(ctx context.Context, limit int) ([]model.SubscriptionRecord, error) {
	rows, err := q.db.query(ctx, `SELECT id, email, created_at FROM subscriptions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSubscription)
}

// GetSubscription returns the subscription with id or sql.ErrNoRows.
func (q *Queries) GetSubscription(ctx context.Context, id int64) (model.SubscriptionRecord, error) {
	return scanSubscription(q.db.queryRow(ctx, `SELECT id, email, created_at FROM subscriptions WHERE id = ?`, id))
}

// CreateSubscription records a newsletter subscription.
func (q *Queries) CreateSubscription(ctx context.Context, email string) (model.SubscriptionRecord, error) {
	id, err := q.db.insert(ctx, `INSERT INTO subscriptions (email, created_at) VALUES (?, ?)`, email, now())
	if err != nil {
		return model.SubscriptionRecord{}, err
	}
	return q.GetSubscription(ctx, id)
}

// DeleteSubscription removes a subscription. It returns sql.ErrNoRows when id does not exist.
func (q *Queries) DeleteSubscription(ctx context.Context, id int64) error {
	return q.db.execAffecting(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
}

// CountSubscriptions returns the number of subscriptions.
func (q *Queries) CountSubscriptions(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM subscriptions`)
}
