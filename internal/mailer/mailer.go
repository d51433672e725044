// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer relays site notifications (contact, order and subscribe
// submissions) to the site owner through a pluggable Provider.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
)

// Message is a single outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Provider delivers messages.
type Provider interface {
	Send(ctx context.Context, msg *Message) error
	Name() string
}

// ErrInvalidAddress is returned for malformed email addresses.
var ErrInvalidAddress = errors.New("invalid email address")

// ValidateEmail reports whether address is a single bare RFC 5322 address.
func ValidateEmail(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	// Reject display-name forms like "Bob <bob@example.com>".
	if parsed.Address != address {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	if !strings.Contains(parsed.Address[strings.LastIndex(parsed.Address, "@")+1:], ".") {
		return fmt.Errorf("%w: domain has no dot", ErrInvalidAddress)
	}
	return nil
}

// Service sends notifications from a fixed sender to the site owner.
type Service struct {
	provider Provider
	from     string
	to       string
}

// NewService returns a Service sending from -> to through provider.
func NewService(provider Provider, from, to string) (*Service, error) {
	if provider == nil {
		return nil, errors.New("mail provider is required")
	}
	if err := ValidateEmail(from); err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	if err := ValidateEmail(to); err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	return &Service{provider: provider, from: from, to: to}, nil
}

// Notify renders n and sends exactly one message to the site owner.
// The submitter's address, when present, becomes Reply-To.
func (s *Service) Notify(ctx context.Context, n Notification) error {
	subject, html, text, err := n.render()
	if err != nil {
		return fmt.Errorf("rendering %s email: %w", n.kind(), err)
	}

	msg := &Message{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: n.replyTo(),
		Subject: subject,
		HTML:    html,
		Text:    text,
	}
	if err := s.provider.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending %s email via %s: %w", n.kind(), s.provider.Name(), err)
	}

	slog.Info("notification email sent", "kind", n.kind(), "provider", s.provider.Name())
	return nil
}

// LogProvider writes messages to the log instead of delivering them.
// It is used when no SMTP relay is configured.
type LogProvider struct{}

// Send implements Provider.
func (LogProvider) Send(_ context.Context, msg *Message) error {
	slog.Info("email not delivered, no SMTP relay configured",
		"to", strings.Join(msg.To, ","),
		"subject", msg.Subject,
	)
	return nil
}

// Name implements Provider.
func (LogProvider) Name() string { return "log" }
