// Package sqlite provides the local backend: a pure-Go SQLite database owned
// by a single device. It implements the same repository interfaces as the
// shared PostgreSQL backend so the store mode controller can swap between
// them wholesale.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Store wraps the local database handle. Repositories share one handle; the
// driver serializes writes internally.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the local database at dbPath, enabling
// foreign keys and applying the schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Timestamps are stored as integer nanoseconds since the epoch: exact,
// compact, and ordered by plain integer comparison.

func encodeTime(t time.Time) int64 {
	return t.UnixNano()
}

func decodeTime(ns int64) time.Time {
	return time.Unix(0, ns)
}

func encodeTimePtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ns := t.UnixNano()
	return &ns
}

func decodeTimePtr(ns *int64) *time.Time {
	if ns == nil {
		return nil
	}
	t := time.Unix(0, *ns)
	return &t
}
