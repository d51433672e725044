// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the admin gate, CSRF and
// rate limiting, plus the JSON error envelope shared with the API handlers.
package middleware

import (
	"encoding/json"
	"net/http"
)

// Machine-readable values of the error envelope's code field.
const (
	CodeBadRequest       = "bad_request"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeConflict         = "conflict"
	CodeRateLimited      = "rate_limit_exceeded"
	CodeTimeout          = "timeout"
	CodeInternal         = "internal_error"
)

// ErrorBody is the payload under the envelope's "error" key. Details maps a
// request field to what is wrong with it.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// APIError is the envelope every failed API call answers with.
type APIError struct {
	Error ErrorBody `json:"error"`
}

var statusCodes = map[int]string{
	http.StatusBadRequest:          CodeBadRequest,
	http.StatusUnauthorized:        CodeUnauthorized,
	http.StatusForbidden:           CodeForbidden,
	http.StatusNotFound:            CodeNotFound,
	http.StatusMethodNotAllowed:    CodeMethodNotAllowed,
	http.StatusConflict:            CodeConflict,
	http.StatusTooManyRequests:     CodeRateLimited,
	http.StatusServiceUnavailable:  CodeTimeout,
	http.StatusInternalServerError: CodeInternal,
}

// CodeForStatus returns the envelope code conventionally paired with an
// HTTP status. Unknown statuses map to CodeInternal.
func CodeForStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return CodeInternal
}

// WriteAPIError writes the error envelope with the given status.
func WriteAPIError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIError{Error: ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// StatusHandler answers every request with status and the standard text for
// it. The router uses it for unmatched paths and methods.
func StatusHandler(status int) http.HandlerFunc {
	message := http.StatusText(status)
	code := CodeForStatus(status)
	return func(w http.ResponseWriter, _ *http.Request) {
		WriteAPIError(w, status, code, message, nil)
	}
}
