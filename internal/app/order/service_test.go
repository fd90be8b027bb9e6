package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/adapter/memory"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

type failingStore struct {
	interfaces.KeyValueStore
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.KeyValueStore.GetItem(ctx, key)
}

func (f *failingStore) SetItem(ctx context.Context, key, value string) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	return f.KeyValueStore.SetItem(ctx, key, value)
}

func newCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog([]domain.MenuItem{
		{ID: "a", Name: "Dosai", Price: 30},
		{ID: "b", Name: "Pongal", Price: 40},
	})
	require.NoError(t, err)
	return c
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	kv := memory.NewKeyValueStore()
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	repo := NewRepository(kv, c, fixedClock(now), logger.Nop())

	state := domain.NewOrderState(c, now).Increment("a").Increment("a").Increment("b")
	require.NoError(t, repo.Save(ctx, state))

	loaded := repo.Load(ctx)
	assert.Equal(t, state.Counts, loaded.Counts)
	assert.True(t, state.LastReset.Equal(loaded.LastReset))
}

func TestLoadFallsBackToFreshState(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		kv   interfaces.KeyValueStore
	}{
		{"absent", memory.NewKeyValueStore()},
		{"read error", &failingStore{KeyValueStore: memory.NewKeyValueStore(), getErr: errors.New("disk gone")}},
		{"malformed", seeded(t, "{not json")},
		{"no counts", seeded(t, `{"lastReset":"2026-10-18T00:00:00Z"}`)},
		{"bad timestamp", seeded(t, `{"counts":{"a":1},"lastReset":"yesterday"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(tt.kv, c, fixedClock(now), logger.Nop())
			state := repo.Load(ctx)

			assert.Equal(t, map[string]int{"a": 0, "b": 0}, state.Counts)
			assert.Equal(t, now, state.LastReset)
		})
	}
}

func TestLoadFiltersStaleIDs(t *testing.T) {
	kv := seeded(t, `{"counts":{"a":3,"removed-item":7},"lastReset":"2026-10-18T06:00:00Z"}`)
	repo := NewRepository(kv, newCatalog(t), nil, logger.Nop())

	state := repo.Load(context.Background())

	assert.Equal(t, map[string]int{"a": 3, "b": 0}, state.Counts)
	assert.Equal(t, time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC), state.LastReset.UTC())
}

func TestLoadWithoutLastResetUsesNow(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	repo := NewRepository(seeded(t, `{"counts":{"b":2}}`), newCatalog(t), fixedClock(now), logger.Nop())

	state := repo.Load(context.Background())

	assert.Equal(t, 2, state.Quantity("b"))
	assert.Equal(t, now, state.LastReset)
}

func TestStoreWritesThroughOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	kv := &failingStore{KeyValueStore: memory.NewKeyValueStore()}
	repo := NewRepository(kv, c, nil, logger.Nop())

	store := NewStore(c, repo.Load(ctx), nil)
	store.Subscribe(WriteThrough(repo, logger.Nop()))

	_, err := store.Increment("a")
	require.NoError(t, err)
	_, err = store.Increment("a")
	require.NoError(t, err)
	_, err = store.Decrement("b")
	require.NoError(t, err)

	assert.Equal(t, 3, kv.sets)
	assert.Equal(t, map[string]int{"a": 2, "b": 0}, repo.Load(ctx).Counts)
}

func TestStoreSwallowsWriteFailures(t *testing.T) {
	c := newCatalog(t)
	kv := &failingStore{KeyValueStore: memory.NewKeyValueStore(), setErr: errors.New("quota exceeded")}
	repo := NewRepository(kv, c, nil, logger.Nop())

	store := NewStore(c, domain.NewOrderState(c, time.Now()), nil)
	store.Subscribe(WriteThrough(repo, logger.Nop()))

	state, err := store.Increment("b")
	require.NoError(t, err)
	assert.Equal(t, 1, state.Quantity("b"))
	assert.Equal(t, 1, store.Snapshot().Quantity("b"))
}

func TestStoreRejectsUnknownItem(t *testing.T) {
	c := newCatalog(t)
	store := NewStore(c, domain.NewOrderState(c, time.Now()), nil)

	calls := 0
	store.Subscribe(func(domain.OrderState) { calls++ })

	_, err := store.Increment("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
	assert.Zero(t, calls)
}

func TestStoreResetAll(t *testing.T) {
	c := newCatalog(t)
	start := time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)
	store := NewStore(c, domain.NewOrderState(c, start), fixedClock(start.Add(10*time.Hour)))

	_, _ = store.Increment("a")
	_, _ = store.ResetOne("a")
	_, _ = store.Increment("b")
	closed, state := store.ResetAll()

	assert.Equal(t, map[string]int{"a": 0, "b": 1}, closed.Counts)
	assert.Equal(t, start, closed.LastReset)
	assert.Equal(t, map[string]int{"a": 0, "b": 0}, state.Counts)
	assert.True(t, state.LastReset.After(start))
}

func TestSnapshotIsACopy(t *testing.T) {
	c := newCatalog(t)
	store := NewStore(c, domain.NewOrderState(c, time.Now()), nil)

	snap := store.Snapshot()
	snap.Counts["a"] = 99

	assert.Equal(t, 0, store.Snapshot().Quantity("a"))
}

func seeded(t *testing.T, raw string) interfaces.KeyValueStore {
	t.Helper()
	kv := memory.NewKeyValueStore()
	require.NoError(t, kv.SetItem(context.Background(), StateKey, raw))
	return kv
}
