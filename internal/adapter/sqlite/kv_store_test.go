package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	store := NewKeyValueStore(db)

	_, ok, err := store.GetItem(ctx, "daily-orders-state")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetItem(ctx, "daily-orders-state", `{"counts":{"idly":1}}`))
	require.NoError(t, store.SetItem(ctx, "daily-orders-state", `{"counts":{"idly":2}}`))
	require.NoError(t, Close(db))

	db, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	v, ok, err := NewKeyValueStore(db).GetItem(ctx, "daily-orders-state")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"counts":{"idly":2}}`, v)

	var count int64
	require.NoError(t, db.Model(&kvEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestKeyValueStoreKeepsKeysApart(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	store := NewKeyValueStore(db)
	ctx := context.Background()

	require.NoError(t, store.SetItem(ctx, "darkMode", "true"))
	require.NoError(t, store.SetItem(ctx, "daily-orders-state", "{}"))

	v, _, err := store.GetItem(ctx, "darkMode")
	require.NoError(t, err)
	assert.Equal(t, "true", v)
}
