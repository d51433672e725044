// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestParseFormType(t *testing.T) {
	tests := []struct {
		input  string
		want   FormType
		wantOK bool
	}{
		{"contact", FormTypeContact, true},
		{" Order ", FormTypeOrder, true},
		{"SUBSCRIBE", FormTypeSubscribe, true},
		{"newsletter", "newsletter", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseFormType(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseFormType(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFormType_Properties(t *testing.T) {
	tests := []struct {
		form       FormType
		hasMessage bool
		table      string
	}{
		{FormTypeContact, true, "contacts_form"},
		{FormTypeOrder, true, "orders_contact_form"},
		{FormTypeSubscribe, false, "subscriptions"},
		{"bogus", false, ""},
	}

	for _, tt := range tests {
		if got := tt.form.HasMessage(); got != tt.hasMessage {
			t.Errorf("%q.HasMessage() = %v", tt.form, got)
		}
		if got := tt.form.Table(); got != tt.table {
			t.Errorf("%q.Table() = %q, want %q", tt.form, got, tt.table)
		}
	}
}

func TestFormTypeNames(t *testing.T) {
	if got := FormTypeNames(); got != "contact, order, subscribe" {
		t.Errorf("FormTypeNames() = %q", got)
	}
}
