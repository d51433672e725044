// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the ofolio project.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/olegiv/ofolio-go/internal/mailer"
	"github.com/olegiv/ofolio-go/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB opens a SQLite database in the test's temp dir with the given
// schema migrated. The pool is closed when the test ends.
func TestDB(t *testing.T, schema store.Schema) *store.Queries {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "ofolio-"+string(schema)+".db")
	db, err := store.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(context.Background(), db, schema); err != nil {
		t.Fatalf("migrating %s: %v", schema, err)
	}
	return store.New(db)
}

// TestContentDB returns a migrated content database.
func TestContentDB(t *testing.T) *store.Queries {
	t.Helper()
	return TestDB(t, store.SchemaContent)
}

// TestFormsDB returns a migrated forms database.
func TestFormsDB(t *testing.T) *store.Queries {
	t.Helper()
	return TestDB(t, store.SchemaForms)
}

// RecordingProvider is a mailer.Provider that keeps every message in memory.
// Setting Err makes Send fail without recording.
type RecordingProvider struct {
	mu       sync.Mutex
	messages []mailer.Message
	Err      error
}

// Send implements mailer.Provider.
func (p *RecordingProvider) Send(_ context.Context, msg *mailer.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.messages = append(p.messages, *msg)
	return nil
}

// Name implements mailer.Provider.
func (p *RecordingProvider) Name() string { return "recording" }

// Messages returns a copy of the sent messages.
func (p *RecordingProvider) Messages() []mailer.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]mailer.Message, len(p.messages))
	copy(out, p.messages)
	return out
}

// TestMailer returns a mail service backed by a RecordingProvider.
func TestMailer(t *testing.T) (*mailer.Service, *RecordingProvider) {
	t.Helper()
	provider := &RecordingProvider{}
	svc, err := mailer.NewService(provider, "site@example.com", "owner@example.com")
	if err != nil {
		t.Fatalf("creating mail service: %v", err)
	}
	return svc, provider
}
