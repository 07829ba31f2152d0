// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a Dictionary backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the dictionary database at path and creates
// the schema if it does not exist.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating dictionary directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS readings (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			form TEXT NOT NULL,
			vowel INTEGER NOT NULL,
			UNIQUE(form, vowel)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_form ON readings(form)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Import adds entries in one transaction. Readings already present are
// skipped. It returns the number of readings added.
func (s *Store) Import(ctx context.Context, entries []Entry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO readings (form, vowel) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx, Normalize(e.Form), e.Vowel)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", e, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", e, err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return added, nil
}

// Lookup implements Dictionary. Readings come back in import order.
func (s *Store) Lookup(ctx context.Context, form string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT vowel FROM readings WHERE form = ? ORDER BY seq`, Normalize(form))
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", form, err)
	}
	defer rows.Close()

	var vowels []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}
		vowels = append(vowels, v)
	}
	return vowels, rows.Err()
}

// Count returns the number of stored readings.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM readings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting readings: %w", err)
	}
	return n, nil
}
