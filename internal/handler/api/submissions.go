// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
)

// Contacts, orders, subscriptions and reviews are append-only from the
// admin's point of view: list, get and delete.

// listHandler returns a handler writing every row produced by list.
func listHandler[T any](entityName string, list func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			slog.Error("failed to list "+entityName, "error", err)
			WriteInternalError(w, "Failed to list "+entityName)
			return
		}
		WriteList(w, items)
	}
}

// getHandler returns a handler writing the row with the {id} URL parameter.
func getHandler[T any](entityName string, get EntityFetcher[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, ok := requireEntityByID(w, r, entityName, get)
		if !ok {
			return
		}
		WriteSuccess(w, item, nil)
	}
}

// deleteHandler returns a handler deleting the row with the {id} URL parameter.
func deleteHandler(entityName string, del func(context.Context, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleDelete(w, r, entityName, del)
	}
}

// ListContacts handles GET /api/admin/contacts.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	listHandler("contacts", h.forms.ListContacts)(w, r)
}

// GetContact handles GET /api/admin/contacts/{id}.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	getHandler("contact", h.forms.GetContact)(w, r)
}

// DeleteContact handles DELETE /api/admin/contacts/{id}.
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	deleteHandler("contact", h.forms.DeleteContact)(w, r)
}

// ListOrders handles GET /api/admin/orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	listHandler("orders", h.forms.ListOrders)(w, r)
}

// GetOrder handles GET /api/admin/orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	getHandler("order", h.forms.GetOrder)(w, r)
}

// DeleteOrder handles DELETE /api/admin/orders/{id}.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteHandler("order", h.forms.DeleteOrder)(w, r)
}

// ListSubscriptions handles GET /api/admin/subscriptions.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	listHandler("subscriptions", h.forms.ListSubscriptions)(w, r)
}

// GetSubscription handles GET /api/admin/subscriptions/{id}.
func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	getHandler("subscription", h.forms.GetSubscription)(w, r)
}

// DeleteSubscription handles DELETE /api/admin/subscriptions/{id}.
func (h *Handler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	deleteHandler("subscription", h.forms.DeleteSubscription)(w, r)
}

// ListReviews handles GET /api/admin/reviews.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	listHandler("reviews", h.forms.ListReviews)(w, r)
}

// GetReview handles GET /api/admin/reviews/{id}.
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	getHandler("review", h.forms.GetReview)(w, r)
}

// DeleteReview handles DELETE /api/admin/reviews/{id}.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	deleteHandler("review", h.forms.DeleteReview)(w, r)
}
