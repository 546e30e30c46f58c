package storage

import (
	"database/sql"
	"errors"

	"wealthfolio/internal/database"
)

// SQLite is the production Backend, one row per logical store in the
// blobs table.
type SQLite struct {
	db *database.DB
}

// NewSQLite creates a SQLite-backed blob store.
func NewSQLite(db *database.DB) *SQLite {
	return &SQLite{db: db}
}

// Get returns the stored value or nil if the key is absent.
func (s *SQLite) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores the value, replacing any previous one.
func (s *SQLite) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *SQLite) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM blobs WHERE key = ?`, key)
	return err
}
