// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Validator is implemented by list elements that check their own shape.
type Validator interface {
	Validate() error
}

// JSONList is a list stored in a single JSON column.
// It never encodes as null: an empty or nil list is written as [].
type JSONList[E any] []E

// Value implements driver.Valuer.
func (l JSONList[E]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]E(l))
	if err != nil {
		return nil, fmt.Errorf("encoding json column: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner. Stored values that fail to decode are replaced
// with an empty list so one corrupt row cannot break a listing.
func (l *JSONList[E]) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = JSONList[E]{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}

	if len(raw) == 0 {
		*l = JSONList[E]{}
		return nil
	}

	var items []E
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("malformed json column, using empty default", "error", err)
		*l = JSONList[E]{}
		return nil
	}
	if items == nil {
		items = []E{}
	}
	*l = items
	return nil
}

// MarshalJSON encodes a nil list as [].
func (l JSONList[E]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]E(l))
}

// UnmarshalJSON decodes strictly; null becomes an empty list.
func (l *JSONList[E]) UnmarshalJSON(data []byte) error {
	var items []E
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		items = []E{}
	}
	*l = items
	return nil
}

// Validate runs Validate on every element that implements Validator.
func (l JSONList[E]) Validate() error {
	for i, item := range l {
		if v, ok := any(item).(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

// OrEmpty returns l, or an empty non-nil list when l is nil.
func (l JSONList[E]) OrEmpty() JSONList[E] {
	if l == nil {
		return JSONList[E]{}
	}
	return l
}
