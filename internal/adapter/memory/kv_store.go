package memory

import (
	"context"
	"sync"

	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

// kvStore keeps values for the life of the process only.
type kvStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewKeyValueStore() interfaces.KeyValueStore {
	return &kvStore{items: make(map[string]string)}
}

func (s *kvStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *kvStore) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}
