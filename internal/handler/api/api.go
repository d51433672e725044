// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON handlers of the public site and the admin back-office.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/ofolio-go/internal/auth"
	"github.com/olegiv/ofolio-go/internal/cache"
	"github.com/olegiv/ofolio-go/internal/mailer"
	"github.com/olegiv/ofolio-go/internal/middleware"
	"github.com/olegiv/ofolio-go/internal/store"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Deps are the dependencies injected into Handler.
type Deps struct {
	Content *store.Queries // services, portfolio, blog, admin users
	Forms   *store.Queries // contacts, orders, subscriptions, reviews
	Tokens  *auth.TokenIssuer
	Mailer  *mailer.Service
	Cache   *cache.Public // nil disables public read caching

	// SecureCookies sets the Secure flag on the admin cookie.
	SecureCookies bool

	// Version is reported by the health endpoint.
	Version string
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	content       *store.Queries
	forms         *store.Queries
	tokens        *auth.TokenIssuer
	mailer        *mailer.Service
	cache         *cache.Public
	secureCookies bool
	sanitizer     *bluemonday.Policy
	version       string
	startTime     time.Time
	now           func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		content:       d.Content,
		forms:         d.Forms,
		tokens:        d.Tokens,
		mailer:        d.Mailer,
		cache:         d.Cache,
		secureCookies: d.SecureCookies,
		sanitizer:     bluemonday.UGCPolicy(),
		version:       d.Version,
		startTime:     time.Now(),
		now:           time.Now,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries list metadata.
type Meta struct {
	Total int `json:"total"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse = middleware.APIError

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 response wrapping data.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteList writes a 200 response for a list with its length in meta.
func WriteList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	WriteSuccess(w, items, &Meta{Total: len(items)})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	middleware.WriteAPIError(w, statusCode, code, message, details)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, middleware.CodeBadRequest, message, details)
}

// WriteValidationError writes a 400 response listing the offending fields.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteBadRequest(w, "Validation failed", fieldErrors)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, middleware.CodeNotFound, message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, middleware.CodeUnauthorized, message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusConflict, middleware.CodeConflict, message, details)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, message, nil)
}

// decodeJSON reads a single JSON value from the request body into dst.
// It writes a 400 response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			WriteBadRequest(w, "Request body is empty", nil)
		case errors.As(err, &typeErr) && typeErr.Field != "":
			WriteValidationError(w, map[string]string{typeErr.Field: "Invalid value type"})
		default:
			WriteBadRequest(w, "Invalid JSON body", nil)
		}
		return false
	}
	if dec.More() {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// parseIDParam parses the {id} URL parameter.
func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// requireID parses the {id} URL parameter, writing 400 on failure.
func requireID(w http.ResponseWriter, r *http.Request, entityName string) (int64, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return 0, false
	}
	return id, true
}

// EntityFetcher fetches an entity by ID.
type EntityFetcher[T any] func(ctx context.Context, id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// It returns false after writing 400, 404 or 500.
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, ok := requireID(w, r, entityName)
	if !ok {
		return zero, false
	}

	entity, err := fetch(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, entityName, "retrieve", id)
		return zero, false
	}
	return entity, true
}

// handleDelete parses the ID and runs del, answering {deleted:true}.
func handleDelete(w http.ResponseWriter, r *http.Request, entityName string, del func(ctx context.Context, id int64) error) bool {
	id, ok := requireID(w, r, entityName)
	if !ok {
		return false
	}
	if err := del(r.Context(), id); err != nil {
		writeStoreError(w, err, entityName, "delete", id)
		return false
	}
	slog.Info(entityName+" deleted", "id", id)
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
	return true
}

// writeStoreError maps a store error to 404, 409 or 500.
func writeStoreError(w http.ResponseWriter, err error, entityName, action string, id int64) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		WriteNotFound(w, capitalizeFirst(entityName)+" not found")
	case store.IsDuplicate(err):
		WriteConflict(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
	default:
		slog.Error("failed to "+action+" "+entityName, "id", id, "error", err)
		WriteInternalError(w, "Failed to "+action+" "+entityName)
	}
}

// SlugExistsChecker reports whether a slug is already taken.
type SlugExistsChecker func() (bool, error)

// checkSlugUnique writes 409 or 500 and returns false unless the slug is free.
func checkSlugUnique(w http.ResponseWriter, slugExists SlugExistsChecker) bool {
	exists, err := slugExists()
	if err != nil {
		slog.Error("failed to check slug", "error", err)
		WriteInternalError(w, "Failed to check slug")
		return false
	}
	if exists {
		WriteConflict(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
		return false
	}
	return true
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]string

func (fe fieldErrors) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		fe[field] = capitalizeFirst(strings.ReplaceAll(field, "_", " ")) + " is required"
	}
}

// maxLen flags value when it is longer than limit characters. An earlier
// message for the same field is kept.
func (fe fieldErrors) maxLen(field, value string, limit int) {
	if _, seen := fe[field]; seen {
		return
	}
	if utf8.RuneCountInString(value) > limit {
		fe[field] = fmt.Sprintf("%s must be at most %d characters", capitalizeFirst(strings.ReplaceAll(field, "_", " ")), limit)
	}
}

func (fe fieldErrors) check(field string, err error) {
	if err != nil {
		fe[field] = err.Error()
	}
}
