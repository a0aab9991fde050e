package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS client_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteStore is a Store backed by a single SQLite file, so client state
// survives process restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the state file at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("state file path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping state db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save serializes value and stores it under key.
func (s *SQLiteStore) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %q: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO client_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("save state %q: %w", key, err)
	}
	return nil
}

// Load deserializes the value stored under key into dest. Missing rows and
// rows that no longer parse both report false.
func (s *SQLiteStore) Load(key string, dest any) bool {
	var value string
	err := s.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[LocalStore] Error loading %q: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		log.Printf("[LocalStore] Discarding malformed state %q: %v", key, err)
		return false
	}
	return true
}

// Delete removes the value stored under key.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
