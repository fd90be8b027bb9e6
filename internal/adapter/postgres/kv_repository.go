package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

const (
	createKVTable = `CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	createKVIndex = `CREATE INDEX IF NOT EXISTS kv_store_updated_at_idx ON kv_store (updated_at)`

	selectKV = `SELECT value FROM kv_store WHERE key = $1`
	upsertKV = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

type kvRepository struct {
	db DB
}

func NewKeyValueStore(db DB) interfaces.KeyValueStore {
	return &kvRepository{db: db}
}

// EnsureSchema creates the kv_store table on first start.
func EnsureSchema(ctx context.Context, db DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, createKVTable); err != nil {
		return fmt.Errorf("failed to create kv_store: %w", err)
	}
	if _, err := tx.Exec(ctx, createKVIndex); err != nil {
		return fmt.Errorf("failed to create kv_store index: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

func (r *kvRepository) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, selectKV, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// ErrNotWritten means the upsert reported no affected row.
var ErrNotWritten = errors.New("no row written")

func (r *kvRepository) SetItem(ctx context.Context, key, value string) error {
	tag, err := r.db.Exec(ctx, upsertKV, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to write %q: %w", key, ErrNotWritten)
	}
	return nil
}
