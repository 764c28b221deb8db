package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Keys stored in the kv table.
const (
	KeyLastMode      = "last_mode"
	KeyFirstPlayDate = "first_play_date"
)

// KV is a small persisted key-value interface.
type KV interface {
	Load(key string) (string, bool, error)
	Save(key, value string) error
	Delete(key string) error
}

var _ KV = (*Store)(nil)

// Load returns the value stored under key and whether it exists.
func (s *Store) Load(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot load %q: %w", key, err)
	}
	return value, true, nil
}

// Save stores value under key, replacing any previous value.
func (s *Store) Save(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return nil
}

// SaveIfAbsent stores value only when key has no value yet.
// Reports whether the value was written.
func (s *Store) SaveIfAbsent(key, value string) (bool, error) {
	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO kv (key, value) VALUES (?, ?)",
		key, value,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return n > 0, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %q: %w", key, err)
	}
	return nil
}
