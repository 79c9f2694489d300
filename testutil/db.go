// Package testutil provides shared helpers for tests that need a real
// SQLite database. Databases live in t.TempDir, so the helpers never skip
// and never touch shared state.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql
)

// NewSQLDB opens a *sql.DB on a fresh SQLite file inside t.TempDir.
// No migrations are applied; use it when a test drives goose or
// kv.Migrate itself.
// The connection is closed automatically when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openSQLDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func openSQLDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps every statement on the same SQLite handle.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
