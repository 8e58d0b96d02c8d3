// Package store exposes the SQLite kv table as an opaque key-value store
// with JSON-serializable values. Writers replace whole values; the last
// write wins.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// Keys used by the session. Snapshot collections live under KeySavedLists
// as a single JSON object keyed by snapshot name.
const (
	KeyFoods           = "foods"
	KeyMultiplier      = "multiplier"
	KeyTargetCalories  = "target_calories"
	KeyRDAGender       = "rda_gender"
	KeyFoodDB          = "food_db"
	KeyUnitWeights     = "unit_weights"
	KeySavedLists      = "saved_lists"
	KeyCurrentListName = "current_list_name"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get unmarshals the value stored under key into dest. The second return is
// false when the key is absent; dest is left untouched in that case.
func (s *Store) Get(key string, dest any) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, fmt.Errorf("store key is required")
	}
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) Set(key string, value any) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("store key is required")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	_, err = s.db.Exec(`
INSERT INTO kv(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, string(raw))
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("store key is required")
	}
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
