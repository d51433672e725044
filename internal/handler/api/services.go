// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/ofolio-go/internal/model"
	"github.com/olegiv/ofolio-go/internal/store"
	"github.com/olegiv/ofolio-go/internal/util"
)

// ServiceRequest is the body of service create and update requests.
type ServiceRequest struct {
	Slug            string                            `json:"slug"`
	Title           string                            `json:"title"`
	Subtitle        string                            `json:"subtitle"`
	Image           string                            `json:"image"`
	Description     string                            `json:"description"`
	LongDescription string                            `json:"long_description"`
	ProcessText     string                            `json:"process_text"`
	Pricing         model.JSONList[model.PricingPlan] `json:"pricing"`
	Features        model.JSONList[model.Feature]     `json:"features"`
	Testimonials    model.JSONList[model.Testimonial] `json:"testimonials"`
	FAQs            model.JSONList[model.FAQ]         `json:"faqs"`
	IsActive        *bool                             `json:"is_active"`
}

// params validates the request and applies defaults. A nil map means valid.
func (req ServiceRequest) params() (store.ServiceParams, fieldErrors) {
	fe := fieldErrors{}
	fe.require("title", req.Title)

	slug := util.ResolveSlug(req.Slug, req.Title)
	if req.Title != "" && !util.IsValidSlug(slug) {
		fe["slug"] = "Slug must contain only lowercase letters, numbers and hyphens"
	}

	fe.check("pricing", req.Pricing.Validate())
	fe.check("features", req.Features.Validate())
	fe.check("testimonials", req.Testimonials.Validate())
	fe.check("faqs", req.FAQs.Validate())
	if len(fe) > 0 {
		return store.ServiceParams{}, fe
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return store.ServiceParams{
		Slug:            slug,
		Title:           strings.TrimSpace(req.Title),
		Subtitle:        req.Subtitle,
		Image:           req.Image,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		ProcessText:     req.ProcessText,
		Pricing:         req.Pricing.OrEmpty(),
		Features:        req.Features.OrEmpty(),
		Testimonials:    req.Testimonials.OrEmpty(),
		FAQs:            req.FAQs.OrEmpty(),
		IsActive:        isActive,
	}, nil
}

// ListServices handles GET /api/admin/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.content.ListServices(r.Context())
	if err != nil {
		slog.Error("failed to list services", "error", err)
		WriteInternalError(w, "Failed to list services")
		return
	}
	WriteList(w, services)
}

// GetService handles GET /api/admin/services/{id}.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	service, ok := requireEntityByID(w, r, "service", h.content.GetService)
	if !ok {
		return
	}
	WriteSuccess(w, service, nil)
}

// CreateService handles POST /api/admin/services.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, fe := req.params()
	if fe != nil {
		WriteValidationError(w, fe)
		return
	}

	ctx := r.Context()
	if !checkSlugUnique(w, func() (bool, error) { return h.content.ServiceSlugExists(ctx, params.Slug, 0) }) {
		return
	}

	service, err := h.content.CreateService(ctx, params)
	if err != nil {
		writeStoreError(w, err, "service", "create", 0)
		return
	}

	h.cache.Invalidate(ctx)
	slog.Info("service created", "id", service.ID, "slug", service.Slug)
	WriteCreated(w, service)
}

// UpdateService handles PUT /api/admin/services/{id}.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "service")
	if !ok {
		return
	}

	var req ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, fe := req.params()
	if fe != nil {
		WriteValidationError(w, fe)
		return
	}

	ctx := r.Context()
	if !checkSlugUnique(w, func() (bool, error) { return h.content.ServiceSlugExists(ctx, params.Slug, id) }) {
		return
	}

	service, err := h.content.UpdateService(ctx, id, params)
	if err != nil {
		writeStoreError(w, err, "service", "update", id)
		return
	}

	h.cache.Invalidate(ctx)
	slog.Info("service updated", "id", id)
	WriteSuccess(w, service, nil)
}

// DeleteService handles DELETE /api/admin/services/{id}.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if handleDelete(w, r, "service", h.content.DeleteService) {
		h.cache.Invalidate(r.Context())
	}
}
