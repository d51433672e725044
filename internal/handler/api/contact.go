// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/ofolio-go/internal/mailer"
	"github.com/olegiv/ofolio-go/internal/model"
	"github.com/olegiv/ofolio-go/internal/store"
)

// looseString accepts a JSON string or number. The order form sends prices
// either way.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*s = looseString(n.String())
	return nil
}

// ContactRequest is the body of POST /api/contact. Type selects which of the
// other fields apply.
type ContactRequest struct {
	Type    string      `json:"type"`
	form    model.FormType
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Subject string      `json:"subject"`
	Message string      `json:"message"`
	Service string      `json:"service"`
	Price   looseString `json:"price"`
}

func (req *ContactRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	req.Service = strings.TrimSpace(req.Service)
	req.Price = looseString(strings.TrimSpace(string(req.Price)))
}

func (req *ContactRequest) validate() fieldErrors {
	fe := fieldErrors{}
	checkEmail(fe, req.Email)

	if req.form.HasMessage() {
		fe.require("name", req.Name)
		checkMessage(fe, req.Message)
	}
	switch req.form {
	case model.FormTypeContact:
		fe.require("subject", req.Subject)
	case model.FormTypeOrder:
		fe.require("service", req.Service)
	}

	fe.maxLen("email", req.Email, model.MaxEmailLength)
	// Subscriptions store only the email.
	if req.form.HasMessage() {
		fe.maxLen("name", req.Name, model.MaxNameLength)
		fe.maxLen("phone", req.Phone, model.MaxPhoneLength)
		fe.maxLen("subject", req.Subject, model.MaxSubjectLength)
		fe.maxLen("message", req.Message, model.MaxMessageLength)
	}
	if req.form == model.FormTypeOrder {
		fe.maxLen("service", req.Service, model.MaxServiceLength)
		fe.maxLen("price", string(req.Price), model.MaxPriceLength)
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

func checkEmail(fe fieldErrors, email string) {
	if email == "" {
		fe["email"] = "Email is required"
		return
	}
	if err := mailer.ValidateEmail(email); err != nil {
		fe["email"] = "Email address is invalid"
	}
}

func checkMessage(fe fieldErrors, message string) {
	switch n := utf8.RuneCountInString(message); {
	case n == 0:
		fe["message"] = "Message is required"
	case n < model.MinMessageLength:
		fe["message"] = fmt.Sprintf("Message must be at least %d characters", model.MinMessageLength)
	}
}

// SubmitContact handles POST /api/contact. The submission is stored in its
// table, then exactly one notification email is relayed to the site owner.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.normalize()

	form, ok := model.ParseFormType(req.Type)
	if !ok {
		WriteBadRequest(w, "Unknown form type", map[string]string{
			"type": "Must be one of: " + model.FormTypeNames(),
		})
		return
	}
	req.form = form
	if fe := req.validate(); fe != nil {
		WriteValidationError(w, fe)
		return
	}

	ctx := r.Context()
	var (
		notification mailer.Notification
		recordID     int64
		err          error
	)

	switch form {
	case model.FormTypeContact:
		var rec model.ContactRecord
		rec, err = h.forms.CreateContact(ctx, store.CreateContactParams{
			Name: req.Name, Email: req.Email, Phone: req.Phone, Subject: req.Subject, Message: req.Message,
		})
		recordID = rec.ID
		notification = mailer.ContactNotification{
			Name: req.Name, Email: req.Email, Phone: req.Phone, Subject: req.Subject, Message: req.Message,
		}
	case model.FormTypeOrder:
		var rec model.OrderRecord
		rec, err = h.forms.CreateOrder(ctx, store.CreateOrderParams{
			Name: req.Name, Email: req.Email, Phone: req.Phone, Subject: req.Subject, Message: req.Message,
			Price: string(req.Price), Service: req.Service,
		})
		recordID = rec.ID
		notification = mailer.OrderNotification{
			Name: req.Name, Email: req.Email, Phone: req.Phone, Subject: req.Subject, Message: req.Message,
			Service: req.Service, Price: string(req.Price),
		}
	case model.FormTypeSubscribe:
		var rec model.SubscriptionRecord
		rec, err = h.forms.CreateSubscription(ctx, req.Email)
		recordID = rec.ID
		notification = mailer.SubscribeNotification{Email: req.Email}
	}

	if err != nil {
		slog.Error("failed to store form submission", "type", form, "table", form.Table(), "error", err)
		WriteInternalError(w, "Failed to submit form")
		return
	}
	slog.Info("form submission stored", "type", form, "table", form.Table(), "id", recordID)

	if err := h.mailer.Notify(ctx, notification); err != nil {
		slog.Error("failed to send form notification", "type", form, "id", recordID, "error", err)
		WriteInternalError(w, "Failed to send message")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Message sent successfully"})
}

// ReviewRequest is the body of POST /api/reviews.
type ReviewRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SubmitReview handles POST /api/reviews.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Comment = strings.TrimSpace(req.Comment)

	fe := fieldErrors{}
	fe.require("name", req.Name)
	fe.require("comment", req.Comment)
	if req.Email != "" {
		checkEmail(fe, req.Email)
	}
	if req.Rating < 1 || req.Rating > 5 {
		fe["rating"] = "Rating must be between 1 and 5"
	}
	fe.maxLen("name", req.Name, model.MaxNameLength)
	fe.maxLen("email", req.Email, model.MaxEmailLength)
	fe.maxLen("comment", req.Comment, model.MaxMessageLength)
	if len(fe) > 0 {
		WriteValidationError(w, fe)
		return
	}

	review, err := h.forms.CreateReview(r.Context(), store.CreateReviewParams{
		Name: req.Name, Email: req.Email, Rating: req.Rating, Comment: req.Comment,
	})
	if err != nil {
		slog.Error("failed to store review", "error", err)
		WriteInternalError(w, "Failed to submit review")
		return
	}

	slog.Info("review submitted", "id", review.ID, "rating", review.Rating)
	WriteCreated(w, review)
}
