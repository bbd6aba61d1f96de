package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// KVStore is the key-value persistence boundary the scene engine
// writes through: JSON blobs keyed per feature.
type KVStore struct {
	db *DB
}

func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the stored blob for a key. Missing keys are reported
// via the bool, not as an error.
func (s *KVStore) Get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.conn.QueryRow(`SELECT value FROM scene_data WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set upserts a blob under a key.
func (s *KVStore) Set(key string, value []byte) error {
	_, err := s.db.conn.Exec(
		`INSERT INTO scene_data (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (s *KVStore) Delete(key string) error {
	if _, err := s.db.conn.Exec(`DELETE FROM scene_data WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}
