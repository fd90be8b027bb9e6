package interfaces

import "context"

// Key/value storage the counter persists into (adapter/sqlite, adapter/postgres, adapter/memory).
// GetItem reports ok=false when the key was never written.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
}
