// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// Schema names a migration set. Content and forms live in separate databases.
type Schema string

// Migration sets.
const (
	SchemaContent Schema = "content"
	SchemaForms   Schema = "forms"
)

// Migrate applies all pending migrations of schema to db.
func Migrate(ctx context.Context, db *DB, schema Schema) error {
	var gooseDialect goose.Dialect
	switch db.dialect {
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	case DialectMySQL:
		gooseDialect = goose.DialectMySQL
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return fmt.Errorf("no migrations for dialect %q", db.dialect)
	}

	dir := fmt.Sprintf("migrations/%s/%s", schema, db.dialect)
	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("opening migrations %s: %w", dir, err)
	}
	if entries, err := fs.ReadDir(fsys, "."); err != nil || len(entries) == 0 {
		return fmt.Errorf("schema %q is not available for %s", schema, db.dialect)
	}

	provider, err := goose.NewProvider(gooseDialect, db.DB, fsys)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("running %s migrations: %w", schema, err)
	}
	for _, r := range results {
		slog.Info("migration applied", "schema", schema, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
