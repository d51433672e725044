// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ofolio-go/internal/model"
)

// csvTimeFormat is the layout of created_at in exports.
const csvTimeFormat = time.RFC3339

// recordHeader returns the CSV header for records of kind.
func recordHeader(kind string) ([]string, error) {
	switch kind {
	case model.RecordKindContact:
		return []string{"id", "name", "email", "phone", "subject", "message", "created_at"}, nil
	case model.RecordKindOrder:
		return []string{"id", "name", "email", "phone", "subject", "message", "price", "service", "created_at"}, nil
	case model.RecordKindSubscription:
		return []string{"id", "email", "created_at"}, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}

// recordRow renders one record. Every Record implementation has a case.
func recordRow(rec model.Record) []string {
	switch r := rec.(type) {
	case model.ContactRecord:
		return []string{
			strconv.FormatInt(r.ID, 10), r.Name, r.Email, r.Phone, r.Subject, r.Message,
			r.CreatedAt.UTC().Format(csvTimeFormat),
		}
	case model.OrderRecord:
		return []string{
			strconv.FormatInt(r.ID, 10), r.Name, r.Email, r.Phone, r.Subject, r.Message, r.Price, r.Service,
			r.CreatedAt.UTC().Format(csvTimeFormat),
		}
	case model.SubscriptionRecord:
		return []string{
			strconv.FormatInt(r.ID, 10), r.Email,
			r.CreatedAt.UTC().Format(csvTimeFormat),
		}
	default:
		panic(fmt.Sprintf("unhandled record type %T", rec))
	}
}

// signedNumber matches phone numbers and amounts such as "+44 20 7946 0958"
// or "-100.50". A leading sign on these is data, not a formula.
var signedNumber = regexp.MustCompile(`^[+-][0-9 ().\-/]*[0-9][0-9 ().\-/]*$`)

// escapeFormulas prefixes cells that spreadsheets would evaluate as formulas.
func escapeFormulas(row []string) []string {
	for i, cell := range row {
		if cell == "" || !strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
			continue
		}
		if signedNumber.MatchString(cell) {
			continue
		}
		row[i] = "'" + cell
	}
	return row
}

// toRecords widens a typed slice to the sealed Record interface.
func toRecords[T model.Record](items []T) []model.Record {
	out := make([]model.Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func listAs[T model.Record](list func(context.Context) ([]T, error)) func(context.Context) ([]model.Record, error) {
	return func(ctx context.Context) ([]model.Record, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return toRecords(items), nil
	}
}

// Export handles GET /api/admin/export/{kind} for contacts, orders and subscriptions.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sources := map[string]struct {
		kind string
		list func(context.Context) ([]model.Record, error)
	}{
		"contacts":      {model.RecordKindContact, listAs(h.forms.ListContacts)},
		"orders":        {model.RecordKindOrder, listAs(h.forms.ListOrders)},
		"subscriptions": {model.RecordKindSubscription, listAs(h.forms.ListSubscriptions)},
	}

	name := chi.URLParam(r, "kind")
	src, ok := sources[name]
	if !ok {
		WriteNotFound(w, "Unknown export "+strconv.Quote(name))
		return
	}

	records, err := src.list(r.Context())
	if err != nil {
		slog.Error("failed to load export", "kind", name, "error", err)
		WriteInternalError(w, "Failed to export "+name)
		return
	}

	header, err := recordHeader(src.kind)
	if err != nil {
		slog.Error("failed to build export header", "kind", name, "error", err)
		WriteInternalError(w, "Failed to export "+name)
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", name, h.now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(header)
	for _, rec := range records {
		_ = cw.Write(escapeFormulas(recordRow(rec)))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("failed to write export", "kind", name, "error", err)
		return
	}
	slog.Info("records exported", "kind", name, "rows", len(records))
}
