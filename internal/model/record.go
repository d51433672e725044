// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Record kinds, used as export names and JSON tags.
const (
	RecordKindContact      = "contact"
	RecordKindOrder        = "order"
	RecordKindSubscription = "subscription"
)

// Record is a stored public form submission. The set of implementations is
// closed: ContactRecord, OrderRecord and SubscriptionRecord.
type Record interface {
	Kind() string
	Created() time.Time
	isRecord()
}

// ContactRecord is a row of contacts_form.
type ContactRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderRecord is a row of orders_contact_form.
type OrderRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Price     string    `json:"price"`
	Service   string    `json:"service"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriptionRecord is a row of subscriptions.
type SubscriptionRecord struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactRecord) Kind() string      { return RecordKindContact }
func (OrderRecord) Kind() string        { return RecordKindOrder }
func (SubscriptionRecord) Kind() string { return RecordKindSubscription }

func (r ContactRecord) Created() time.Time      { return r.CreatedAt }
func (r OrderRecord) Created() time.Time        { return r.CreatedAt }
func (r SubscriptionRecord) Created() time.Time { return r.CreatedAt }

func (ContactRecord) isRecord()      {}
func (OrderRecord) isRecord()        {}
func (SubscriptionRecord) isRecord() {}
