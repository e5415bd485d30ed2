// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists API response caches, the master wordbank of
// approved entries, and generation progress in one SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wordbank/pkg/types"
)

const (
	dbFile = "wordbank.db"

	defaultDir    = "data"
	defaultExpiry = 24 * time.Hour

	// timeLayout has fixed width so stored timestamps sort as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Store manages the wordbank SQLite database.
type Store struct {
	db     *sql.DB
	qb     sq.StatementBuilderType
	expiry time.Duration

	// now is replaced in tests to move the clock.
	now func() time.Time
}

// NewStore opens or creates the database at cfg.Dir/wordbank.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	expiry := cfg.CacheExpiry
	if expiry <= 0 {
		expiry = defaultExpiry
	}

	s := &Store{
		db:     db,
		qb:     sq.StatementBuilder.PlaceholderFormat(sq.Question).RunWith(db),
		expiry: expiry,
		now:    time.Now,
	}

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
		`CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			stored_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			word TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			part_of_speech TEXT,
			data TEXT NOT NULL,
			needs_review INTEGER NOT NULL DEFAULT 0,
			approved INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_review ON entries(needs_review)`,
		`CREATE TABLE IF NOT EXISTS progress (
			name TEXT PRIMARY KEY,
			remaining TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}
