package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type StateStore struct {
	db *DB
}

func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

// GetState returns the stored value and whether the key exists.
func (s *StateStore) GetState(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read state %s: %w", key, err)
	}
	return value, true, nil
}

func (s *StateStore) SetState(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("failed to write state %s: %w", key, err)
	}
	return nil
}
