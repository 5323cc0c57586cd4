package memory

import (
	"context"
	"sync"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

// CartSlotRepository keeps slots in process memory. Nothing survives a
// restart; it backs the "memory" storage backend and tests.
type CartSlotRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewCartSlotRepository() *CartSlotRepository {
	return &CartSlotRepository{
		slots: make(map[string][]byte),
	}
}

func (r *CartSlotRepository) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	val, ok := r.slots[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp, nil
}

func (r *CartSlotRepository) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	cp := make([]byte, len(value))
	copy(cp, value)

	r.mu.Lock()
	r.slots[key] = cp
	r.mu.Unlock()
	return nil
}

func (r *CartSlotRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.slots, key)
	r.mu.Unlock()
	return nil
}
