package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore is a KVStore backed by a single Postgres table with JSON
// values. It replaces the source system's local-storage persistence for
// server deployments.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a store over an existing connection
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the backing table if it does not exist
func (p *PostgresStore) Migrate(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv_entries table: %w", err)
	}
	return nil
}

// Get returns the stored value for key
func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key
func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting a missing key is a no-op
func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys with the given prefix in sorted order
func (p *PostgresStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}
	query := `SELECT key FROM kv_entries WHERE key LIKE $1 || '%' ORDER BY key`
	if err := p.db.SelectContext(ctx, &keys, query, prefix); err != nil {
		return nil, fmt.Errorf("failed to list keys with prefix %s: %w", prefix, err)
	}
	return keys, nil
}
