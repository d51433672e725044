// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

func TestJSONList_Value(t *testing.T) {
	var empty JSONList[FAQ]
	v, err := empty.Value()
	if err != nil || v != "[]" {
		t.Errorf("nil Value() = %v, %v; want [] column", v, err)
	}

	faqs := JSONList[FAQ]{{Question: "How long?", Answer: "Two weeks"}}
	v, err = faqs.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != `[{"question":"How long?","answer":"Two weeks"}]` {
		t.Errorf("Value() = %v", v)
	}
}

func TestJSONList_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		wantLen int
		wantErr bool
	}{
		{"null column", nil, 0, false},
		{"empty bytes", []byte{}, 0, false},
		{"bytes", []byte(`[{"title":"SEO"},{"title":"Hosting"}]`), 2, false},
		{"string", `[{"title":"SEO"}]`, 1, false},
		{"json null", "null", 0, false},
		{"malformed falls back to empty", "{not json", 0, false},
		{"unsupported type", 42, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l JSONList[Feature]
			err := l.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if l == nil {
				t.Fatal("Scan() left a nil list")
			}
			if len(l) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(l), tt.wantLen)
			}
		})
	}
}

func TestJSONList_JSON(t *testing.T) {
	type payload struct {
		Pricing JSONList[PricingPlan] `json:"pricing"`
	}

	b, err := json.Marshal(payload{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"pricing":[]}` {
		t.Errorf("Marshal() = %s, want empty array", b)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"pricing":null}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.Pricing == nil || len(p.Pricing) != 0 {
		t.Errorf("null decoded to %#v, want empty list", p.Pricing)
	}

	if err := json.Unmarshal([]byte(`{"pricing":"cheap"}`), &p); err == nil {
		t.Error("expected error for non-array pricing")
	}
}

func TestJSONList_Validate(t *testing.T) {
	tests := []struct {
		name    string
		list    interface{ Validate() error }
		wantErr bool
	}{
		{"valid pricing", JSONList[PricingPlan]{{Name: "Basic", Price: "$99"}}, false},
		{"pricing without price", JSONList[PricingPlan]{{Name: "Basic"}}, true},
		{"feature without title", JSONList[Feature]{{Description: "x"}}, true},
		{"testimonial rating too high", JSONList[Testimonial]{{Name: "A", Content: "B", Rating: 6}}, true},
		{"faq missing answer", JSONList[FAQ]{{Question: "Q"}}, true},
		{"empty", JSONList[FAQ]{}, false},
		{"non validator elements", JSONList[string]{"a", "b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.list.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJSONList_OrEmpty(t *testing.T) {
	var l JSONList[FAQ]
	if got := l.OrEmpty(); got == nil {
		t.Error("OrEmpty() returned nil")
	}
}
