// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds the records, payload types and constants shared by the
// store and the API handlers.
package model

import (
	"slices"
	"strings"
)

// FormType discriminates the submissions accepted by POST /api/contact.
type FormType string

const (
	FormTypeContact   FormType = "contact"
	FormTypeOrder     FormType = "order"
	FormTypeSubscribe FormType = "subscribe"
)

// MinMessageLength is the shortest message, in characters, that contact and
// order submissions may carry.
const MinMessageLength = 10

// Maximum field lengths in characters. They match the forms schema columns
// (VARCHAR(255), VARCHAR(64)) and keep TEXT columns within their byte limit
// for four-byte runes.
const (
	MaxNameLength    = 255
	MaxEmailLength   = 255
	MaxSubjectLength = 255
	MaxServiceLength = 255
	MaxPhoneLength   = 64
	MaxPriceLength   = 64
	MaxMessageLength = 5000
)

var formTypes = []FormType{FormTypeContact, FormTypeOrder, FormTypeSubscribe}

// ParseFormType normalizes s and reports whether it names a known form.
func ParseFormType(s string) (FormType, bool) {
	t := FormType(strings.ToLower(strings.TrimSpace(s)))
	return t, slices.Contains(formTypes, t)
}

// FormTypeNames lists the accepted discriminators for error messages.
func FormTypeNames() string {
	names := make([]string, len(formTypes))
	for i, t := range formTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// HasMessage reports whether the form carries a free-text message with a
// name, as opposed to a bare email subscription.
func (t FormType) HasMessage() bool {
	return t == FormTypeContact || t == FormTypeOrder
}

// Table is the forms-database table a submission of this type lands in.
func (t FormType) Table() string {
	switch t {
	case FormTypeContact:
		return "contacts_form"
	case FormTypeOrder:
		return "orders_contact_form"
	case FormTypeSubscribe:
		return "subscriptions"
	}
	return ""
}
