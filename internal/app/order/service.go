package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
)

// Observer is called after every mutation with a copy of the new state.
// Observers run under the store lock and must not call back into the store.
type Observer func(state domain.OrderState)

// Store owns the order state for the running process.
type Store struct {
	mu        sync.Mutex
	catalog   *domain.Catalog
	state     domain.OrderState
	observers []Observer
	clock     func() time.Time
}

func NewStore(catalog *domain.Catalog, initial domain.OrderState, clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		catalog: catalog,
		state:   domain.MergeOrderState(catalog, initial.Counts, initial.LastReset),
		clock:   clock,
	}
}

func (s *Store) Subscribe(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

func (s *Store) Catalog() *domain.Catalog {
	return s.catalog
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() domain.OrderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Inspect runs fn with the current state while holding the store lock, so
// no mutation can interleave.
func (s *Store) Inspect(fn func(state domain.OrderState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state.Clone())
}

func (s *Store) Increment(id string) (domain.OrderState, error) {
	return s.applyItem(id, domain.OrderState.Increment)
}

func (s *Store) Decrement(id string) (domain.OrderState, error) {
	return s.applyItem(id, domain.OrderState.Decrement)
}

func (s *Store) ResetOne(id string) (domain.OrderState, error) {
	return s.applyItem(id, domain.OrderState.ResetOne)
}

// ResetAll zeroes the whole day and returns the closed day together with
// the fresh one. Callers are responsible for confirmation.
func (s *Store) ResetAll() (closed, fresh domain.OrderState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	closed = s.state.Clone()
	s.commit(s.state.ResetAll(s.catalog, s.clock()))
	return closed, s.state.Clone()
}

func (s *Store) applyItem(id string, fn func(domain.OrderState, string) domain.OrderState) (domain.OrderState, error) {
	if !s.catalog.Contains(id) {
		return domain.OrderState{}, fmt.Errorf("%w: %s", domain.ErrUnknownItem, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(fn(s.state, id))
	return s.state.Clone(), nil
}

func (s *Store) commit(next domain.OrderState) {
	s.state = next
	for _, obs := range s.observers {
		obs(s.state.Clone())
	}
}

// WriteThrough persists every change. Failures are logged and swallowed;
// the in-memory state stays authoritative.
func WriteThrough(repo *Repository, lgr logger.Logger) Observer {
	return func(state domain.OrderState) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := repo.Save(ctx, state); err != nil {
			lgr.Error("state_save_failed", "Failed to persist order state", "", nil, err)
		}
	}
}
