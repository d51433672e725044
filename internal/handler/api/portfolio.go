// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/ofolio-go/internal/model"
	"github.com/olegiv/ofolio-go/internal/store"
)

// PortfolioRequest is the body of portfolio create and update requests.
type PortfolioRequest struct {
	Images          model.JSONList[string] `json:"images"`
	Category        string                 `json:"category"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	LongDescription string                 `json:"long_description"`
	Client          string                 `json:"client"`
	Date            string                 `json:"date"`
	Services        model.JSONList[string] `json:"services"`
	Budget          string                 `json:"budget"`
	Link            string                 `json:"link"`
	Features        model.JSONList[string] `json:"features"`
}

func (req PortfolioRequest) params() (store.PortfolioParams, fieldErrors) {
	fe := fieldErrors{}
	fe.require("title", req.Title)
	if len(fe) > 0 {
		return store.PortfolioParams{}, fe
	}

	return store.PortfolioParams{
		Images:          req.Images.OrEmpty(),
		Category:        strings.TrimSpace(req.Category),
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Client:          req.Client,
		ProjectDate:     req.Date,
		Services:        req.Services.OrEmpty(),
		Budget:          req.Budget,
		Link:            req.Link,
		Features:        req.Features.OrEmpty(),
	}, nil
}

// ListPortfolio handles GET /api/admin/portfolio.
func (h *Handler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListPortfolioItems(r.Context())
	if err != nil {
		slog.Error("failed to list portfolio items", "error", err)
		WriteInternalError(w, "Failed to list portfolio items")
		return
	}
	WriteList(w, items)
}

// GetPortfolio handles GET /api/admin/portfolio/{id}.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	item, ok := requireEntityByID(w, r, "portfolio item", h.content.GetPortfolioItem)
	if !ok {
		return
	}
	WriteSuccess(w, item, nil)
}

// CreatePortfolio handles POST /api/admin/portfolio.
func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req PortfolioRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, fe := req.params()
	if fe != nil {
		WriteValidationError(w, fe)
		return
	}

	item, err := h.content.CreatePortfolioItem(r.Context(), params)
	if err != nil {
		writeStoreError(w, err, "portfolio item", "create", 0)
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("portfolio item created", "id", item.ID)
	WriteCreated(w, item)
}

// UpdatePortfolio handles PUT /api/admin/portfolio/{id}.
func (h *Handler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "portfolio item")
	if !ok {
		return
	}

	var req PortfolioRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, fe := req.params()
	if fe != nil {
		WriteValidationError(w, fe)
		return
	}

	item, err := h.content.UpdatePortfolioItem(r.Context(), id, params)
	if err != nil {
		writeStoreError(w, err, "portfolio item", "update", id)
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("portfolio item updated", "id", id)
	WriteSuccess(w, item, nil)
}

// DeletePortfolio handles DELETE /api/admin/portfolio/{id}.
func (h *Handler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if handleDelete(w, r, "portfolio item", h.content.DeletePortfolioItem) {
		h.cache.Invalidate(r.Context())
	}
}
