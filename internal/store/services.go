// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

const serviceColumns = `id, slug, title, subtitle, image, description, long_description, process_text,
	pricing, features, testimonials, faqs, is_active, created_at, updated_at`

func scanService(row scanner) (Service, error) {
	var s Service
	err := row.Scan(
		&s.ID, &s.Slug, &s.Title, &s.Subtitle, &s.Image, &s.Description,
		&s.LongDescription, &s.ProcessText, &s.Pricing, &s.Features,
		&s.Testimonials, &s.FAQs, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// ListServices returns every service, newest first.
func (q *Queries) ListServices(ctx context.Context) ([]Service, error) {
	rows, err := q.db.query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanService)
}

// ListActiveServices returns the services shown on the public site.
func (q *Queries) ListActiveServices(ctx context.Context) ([]Service, error) {
	rows, err := q.db.query(ctx, `SELECT `+serviceColumns+` FROM services WHERE is_active = ? ORDER BY created_at DESC, id DESC`, true)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanService)
}

// GetService returns the service with id or sql.ErrNoRows.
func (q *Queries) GetService(ctx context.Context, id int64) (Service, error) {
	return scanService(q.db.queryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id))
}

// GetActiveServiceBySlug returns an active service by slug or sql.ErrNoRows.
func (q *Queries) GetActiveServiceBySlug(ctx context.Context, slug string) (Service, error) {
	return scanService(q.db.queryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE slug = ? AND is_active = ?`, slug, true))
}

// ServiceSlugExists reports whether slug is taken by a service other than excludeID.
func (q *Queries) ServiceSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return q.exists(ctx, `SELECT 1 FROM services WHERE slug = ? AND id <> ?`, slug, excludeID)
}

// CreateService inserts a service and returns the stored row.
func (q *Queries) CreateService(ctx context.Context, arg ServiceParams) (Service, error) {
	ts := now()
	id, err := q.db.insert(ctx, `INSERT INTO services (slug, title, subtitle, image, description, long_description,
		process_text, pricing, features, testimonials, faqs, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Slug, arg.Title, arg.Subtitle, arg.Image, arg.Description, arg.LongDescription,
		arg.ProcessText, arg.Pricing, arg.Features, arg.Testimonials, arg.FAQs, arg.IsActive, ts, ts,
	)
	if err != nil {
		return Service{}, err
	}
	return q.GetService(ctx, id)
}

// UpdateService replaces every mutable column of a service and bumps updated_at.
// It returns sql.ErrNoRows when id does not exist.
func (q *Queries) UpdateService(ctx context.Context, id int64, arg ServiceParams) (Service, error) {
	err := q.db.execAffecting(ctx, `UPDATE services SET slug = ?, title = ?, subtitle = ?, image = ?,
		description = ?, long_description = ?, process_text = ?, pricing = ?, features = ?,
		testimonials = ?, faqs = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		arg.Slug, arg.Title, arg.Subtitle, arg.Image, arg.Description, arg.LongDescription,
		arg.ProcessText, arg.Pricing, arg.Features, arg.Testimonials, arg.FAQs, arg.IsActive, now(), id,
	)
	if err != nil {
		return Service{}, err
	}
	return q.GetService(ctx, id)
}

// DeleteService removes a service. It returns sql.ErrNoRows when id does not exist.
func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	return q.db.execAffecting(ctx, `DELETE FROM services WHERE id = ?`, id)
}
