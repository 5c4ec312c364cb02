package repositories

import (
	"database/sql"
	"fmt"
)

// KVRepository is a flat, string-keyed persistent map over the kv table.
//
// It mirrors the mock session state: no expiry, no encryption, explicitly not
// a security boundary. The in-memory session manager remains the source of
// truth; this is its durable mirror.
type KVRepository struct {
	db *sql.DB
}

// NewKVRepository creates a new [KVRepository] with the given database connection
func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Save writes value under key, overwriting any prior value.
func (r *KVRepository) Save(key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}

	return nil
}

// Load retrieves the value stored under key. The second return reports
// whether the key was present.
func (r *KVRepository) Load(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load key %s: %w", key, err)
	}

	return value, true, nil
}

// Remove deletes key. Removing an absent key is not an error.
func (r *KVRepository) Remove(key string) error {
	if _, err := r.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}

	return nil
}
