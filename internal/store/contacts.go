// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/ofolio-go/internal/model"
)

const (
	contactColumns = `id, name, email, phone, subject, message, created_at`
	orderColumns   = `id, name, email, phone, subject, message, price, service, created_at`
)

func scanContact(row scanner) (model.ContactRecord, error) {
	var c model.ContactRecord
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt)
	return c, err
}

func scanOrder(row scanner) (model.OrderRecord, error) {
	var o model.OrderRecord
	err := row.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Subject, &o.Message, &o.Price, &o.Service, &o.CreatedAt)
	return o, err
}

// ListContacts returns contact submissions, newest first.
func (q *Queries) ListContacts(ctx context.Context) ([]model.ContactRecord, error) {
	rows, err := q.db.query(ctx, `SELECT `+contactColumns+` FROM contacts_form ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanContact)
}

// ListRecentContacts returns at most limit contact submissions, newest first.
func (q *Queries) ListRecentContacts(ctx context.Context, limit int) ([]model.ContactRecord, error) {
	rows, err := q.db.query(ctx, `SELECT `+contactColumns+` FROM contacts_form ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanContact)
}

// GetContact returns the submission with id or sql.ErrNoRows.
func (q *Queries) GetContact(ctx context.Context, id int64) (model.ContactRecord, error) {
	return scanContact(q.db.queryRow(ctx, `SELECT `+contactColumns+` FROM contacts_form WHERE id = ?`, id))
}

// CreateContact records a contact submission.
func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (model.ContactRecord, error) {
	id, err := q.db.insert(ctx, `INSERT INTO contacts_form (name, email, phone, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.Phone, arg.Subject, arg.Message, now(),
	)
	if err != nil {
		return model.ContactRecord{}, err
	}
	return q.GetContact(ctx, id)
}

// DeleteContact removes a submission. It returns sql.ErrNoRows when id does not exist.
func (q *Queries) DeleteContact(ctx context.Context, id int64) error {
	return q.db.execAffecting(ctx, `DELETE FROM contacts_form WHERE id = ?`, id)
}

// CountContacts returns the number of contact submissions.
func (q *Queries) CountContacts(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM contacts_form`)
}

// ListOrders returns order submissions, newest first.
func (q *Queries) ListOrders(ctx context.Context) ([]model.OrderRecord, error) {
	rows, err := q.db.query(ctx, `SELECT `+orderColumns+` FROM orders_contact_form ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOrder)
}

// GetOrder returns the order with id or sql.ErrNoRows.
func (q *Queries) GetOrder(ctx context.Context, id int64) (model.OrderRecord, error) {
	return scanOrder(q.db.queryRow(ctx, `SELECT `+orderColumns+` FROM orders_contact_form WHERE id = ?`, id))
}

// CreateOrder records an order submission.
func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (model.OrderRecord, error) {
	id, err := q.db.insert(ctx, `INSERT INTO orders_contact_form (name, email, phone, subject, message, price, service, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.Phone, arg.Subject, arg.Message, arg.Price, arg.Service, now(),
	)
	if err != nil {
		return model.OrderRecord{}, err
	}
	return q.GetOrder(ctx, id)
}

// DeleteOrder removes an order. It returns sql.ErrNoRows when id does not exist.
func (q *Queries) DeleteOrder(ctx context.Context, id int64) error {
	return q.db.execAffecting(ctx, `DELETE FROM orders_contact_form WHERE id = ?`, id)
}
