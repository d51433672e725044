// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ofolio-go/internal/model"
	"github.com/olegiv/ofolio-go/internal/store"
)

func readCSV(t *testing.T, rec *httptest.ResponseRecorder) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExport_Contacts(t *testing.T) {
	env := newTestEnv(t)
	env.h.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	seedContact(t, env, "Ann, Jr.", "Quote \"needed\"")
	seedContact(t, env, "=HYPERLINK(\"evil\")", "Hi")

	rec := env.admin(t, httptest.NewRequest(http.MethodGet, "/api/admin/export/contacts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="contacts-2026-03-14.csv"`, rec.Header().Get("Content-Disposition"))

	rows := readCSV(t, rec)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "email", "phone", "subject", "message", "created_at"}, rows[0])

	names := []string{rows[1][1], rows[2][1]}
	assert.ElementsMatch(t, []string{"Ann, Jr.", "'=HYPERLINK(\"evil\")"}, names)
	for _, row := range rows[1:] {
		_, err := time.Parse(time.RFC3339, row[6])
		assert.NoError(t, err)
	}
}

func TestExport_OrdersAndSubscriptions(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.forms.CreateOrder(context.Background(), store.CreateOrderParams{
		Name: "Bob", Email: "bob@example.com", Phone: "+44 20 7946 0958", Message: "A shop please", Service: "Web", Price: "-100",
	})
	require.NoError(t, err)
	seedSubscription(t, env, "sub@example.com")

	rec := env.admin(t, httptest.NewRequest(http.MethodGet, "/api/admin/export/orders", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	rows := readCSV(t, rec)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 9)
	assert.Equal(t, "+44 20 7946 0958", rows[1][3])
	assert.Equal(t, "-100", rows[1][6])
	assert.Equal(t, "Web", rows[1][7])

	rec = env.admin(t, httptest.NewRequest(http.MethodGet, "/api/admin/export/subscriptions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	rows = readCSV(t, rec)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "email", "created_at"}, rows[0])
	assert.Equal(t, "sub@example.com", rows[1][1])
}

func TestExport_EmptyHasHeaderOnly(t *testing.T) {
	env := newTestEnv(t)

	rec := env.admin(t, httptest.NewRequest(http.MethodGet, "/api/admin/export/subscriptions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, readCSV(t, rec), 1)
}

func TestExport_UnknownKind(t *testing.T) {
	env := newTestEnv(t)

	rec := env.admin(t, httptest.NewRequest(http.MethodGet, "/api/admin/export/reviews", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/admin/export/contacts", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecordRow_CoversEveryKind(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	records := []model.Record{
		model.ContactRecord{ID: 1, Name: "A", CreatedAt: created},
		model.OrderRecord{ID: 2, Name: "B", CreatedAt: created},
		model.SubscriptionRecord{ID: 3, Email: "c@example.com", CreatedAt: created},
	}
	for _, r := range records {
		t.Run(r.Kind(), func(t *testing.T) {
			header, err := recordHeader(r.Kind())
			require.NoError(t, err)
			row := recordRow(r)
			assert.Len(t, row, len(header))
			assert.Equal(t, "2026-01-02T03:04:05Z", row[len(row)-1])
		})
	}

	_, err := recordHeader("invoice")
	assert.Error(t, err)
}

func TestEscapeFormulas(t *testing.T) {
	got := escapeFormulas([]string{"=1+1", "+x", "-y", "@z", "\tt", "plain", "", "a=b"})
	assert.Equal(t, []string{"'=1+1", "'+x", "'-y", "'@z", "'\tt", "plain", "", "a=b"}, got)

	numbers := []string{"+44 20 7946 0958", "+1 (555) 010-9999", "-100", "-12.50", "+49/30/123"}
	assert.Equal(t, numbers, escapeFormulas(append([]string(nil), numbers...)))

	formulas := escapeFormulas([]string{"-2+3", "+1+cmd|' /C calc'!A0", "-", "+", "=42"})
	assert.Equal(t, []string{"'-2+3", "'+1+cmd|' /C calc'!A0", "'-", "'+", "'=42"}, formulas)
}
