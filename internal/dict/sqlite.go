// internal/dict/sqlite.go
//
// SQLite-backed dictionary store. Selected with the --db flag (or
// DICT_DSN); useful when the word list is shared between the CLI and
// the HTTP server. Schema is a single words table, bootstrapped on
// open, with WAL journaling and a busy timeout.

package dict

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLStore keeps the dictionary in a sqlite database.
type SQLStore struct {
	db *sql.DB
}

// OpenSQL opens (and creates if missing) the sqlite dictionary.
func OpenSQL(dsn string) (*SQLStore, error) {
	// Ensure directory exists for ./data/words.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS words (word TEXT PRIMARY KEY);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create words table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error { return s.db.Close() }

// Load returns the sorted word list. Rows that fail validation (e.g.
// hand-edited) are skipped rather than failing the load.
func (s *SQLStore) Load(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		if w = Normalize(w); IsValid(w) {
			out = append(out, w)
		}
	}
	return out, rows.Err()
}

// Add inserts a word; ErrWordExists if already present.
func (s *SQLStore) Add(ctx context.Context, word string) error {
	w := Normalize(word)
	if !IsValid(w) {
		return fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	res, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO words(word) VALUES (?)`, w)
	if err != nil {
		return fmt.Errorf("insert word: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrWordExists, w)
	}
	return nil
}

// Remove deletes a word; ErrWordNotFound if absent.
func (s *SQLStore) Remove(ctx context.Context, word string) error {
	w := Normalize(word)
	res, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE word=?`, w)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrWordNotFound, w)
	}
	return nil
}
