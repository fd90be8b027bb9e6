package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

// StateKey is the storage key of the persisted order state.
const StateKey = "daily-orders-state"

type storedState struct {
	Counts    map[string]int `json:"counts"`
	LastReset *time.Time     `json:"lastReset,omitempty"`
}

// Repository maps OrderState to its JSON record in key/value storage
type Repository struct {
	kv      interfaces.KeyValueStore
	catalog *domain.Catalog
	clock   func() time.Time
	logger  logger.Logger
}

func NewRepository(kv interfaces.KeyValueStore, catalog *domain.Catalog, clock func() time.Time, logger logger.Logger) *Repository {
	if clock == nil {
		clock = time.Now
	}
	return &Repository{
		kv:      kv,
		catalog: catalog,
		clock:   clock,
		logger:  logger,
	}
}

// Load never fails: absent, unreadable or malformed records yield a fresh
// all-zero state.
func (r *Repository) Load(ctx context.Context) domain.OrderState {
	raw, ok, err := r.kv.GetItem(ctx, StateKey)
	if err != nil {
		r.logger.Error("state_load_failed", "Failed to read order state, starting fresh", "", nil, err)
		return domain.NewOrderState(r.catalog, r.clock())
	}
	if !ok {
		r.logger.Debug("state_load_empty", "No stored order state, starting fresh", "", nil)
		return domain.NewOrderState(r.catalog, r.clock())
	}

	var stored storedState
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.Counts == nil {
		r.logger.Debug("state_load_malformed", "Ignoring malformed order state", "", nil)
		return domain.NewOrderState(r.catalog, r.clock())
	}

	lastReset := r.clock()
	if stored.LastReset != nil {
		lastReset = *stored.LastReset
	}

	return domain.MergeOrderState(r.catalog, stored.Counts, lastReset)
}

func (r *Repository) Save(ctx context.Context, state domain.OrderState) error {
	lastReset := state.LastReset.UTC()
	data, err := json.Marshal(storedState{Counts: state.Counts, LastReset: &lastReset})
	if err != nil {
		return fmt.Errorf("failed to marshal order state: %w", err)
	}

	if err := r.kv.SetItem(ctx, StateKey, string(data)); err != nil {
		return fmt.Errorf("failed to save order state: %w", err)
	}
	return nil
}
