package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUpdate = "update_quantity"
	OpClear  = "clear"
)

// CartChange describes one committed mutation.
type CartChange struct {
	Key       string
	Operation string
	Cart      entity.Cart
}

// Listener observes committed changes. Listeners run synchronously while the
// store is locked, in mutation order, and must not call back into the store.
type Listener func(ctx context.Context, change CartChange)

// snapshot pairs a cart with the number of changes committed before it.
type snapshot struct {
	cart     entity.Cart
	revision uint64
}

// Store owns the cart of one slot. Mutations are serialized and written
// through to the slot before the new snapshot becomes visible to readers.
type Store struct {
	mu        sync.Mutex
	slot      repository.CartSlotRepository
	key       string
	log       logger.Logger
	current   atomic.Pointer[snapshot]
	recovered bool
	closed    bool

	listeners map[uint64]Listener
	order     []uint64
	nextID    uint64
}

// OpenStore rehydrates the cart persisted under key. A missing slot yields an
// empty cart; an undecodable one is reset to empty and logged. Any other
// storage failure is returned.
func OpenStore(ctx context.Context, slot repository.CartSlotRepository, key string, log logger.Logger) (*Store, error) {
	s := &Store{
		slot:      slot,
		key:       key,
		log:       log.With("cart_key", key),
		listeners: make(map[uint64]Listener),
	}

	initial := entity.NewCart()
	data, err := slot.Get(ctx, key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.log.Debug("No persisted cart, starting empty")
	case err != nil:
		return nil, fmt.Errorf("failed to load cart %s: %w", key, err)
	default:
		decoded, decErr := entity.DecodeCart(data)
		if decErr != nil {
			s.log.Warnf("Persisted cart is corrupt, starting empty: %v", decErr)
			s.recovered = true
		} else {
			initial = decoded
		}
	}

	s.current.Store(&snapshot{cart: initial})
	return s, nil
}

func (s *Store) Key() string {
	return s.key
}

// Recovered reports whether the persisted value was discarded at open.
func (s *Store) Recovered() bool {
	return s.recovered
}

// Snapshot returns the current cart. It never blocks on writers.
func (s *Store) Snapshot() entity.Cart {
	return s.current.Load().cart
}

// SnapshotRevision returns the current cart together with its revision. The
// revision grows by one with every committed change.
func (s *Store) SnapshotRevision() (entity.Cart, uint64) {
	snap := s.current.Load()
	return snap.cart, snap.revision
}

// AddToCart merges quantity units of product in size. A quantity of 0 means
// one unit; negative quantities and an empty size leave the cart unchanged.
func (s *Store) AddToCart(ctx context.Context, product entity.Product, size string, quantity int) (entity.Cart, error) {
	if quantity == 0 {
		quantity = 1
	}
	return s.mutate(ctx, OpAdd, func(c entity.Cart) (entity.Cart, bool) {
		return c.WithAdded(product, size, quantity)
	})
}

// RemoveFromCart drops the line for productID/size. Unknown keys are a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID, size string) (entity.Cart, error) {
	return s.mutate(ctx, OpRemove, func(c entity.Cart) (entity.Cart, bool) {
		return c.WithoutLine(productID, size)
	})
}

// UpdateQuantity sets the quantity of an existing line. Quantities below 1
// and unknown keys are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID, size string, quantity int) (entity.Cart, error) {
	return s.mutate(ctx, OpUpdate, func(c entity.Cart) (entity.Cart, bool) {
		return c.WithQuantity(productID, size, quantity)
	})
}

// ClearCart empties the cart. The empty cart is persisted even when the cart
// was already empty.
func (s *Store) ClearCart(ctx context.Context) (entity.Cart, error) {
	return s.mutate(ctx, OpClear, func(entity.Cart) (entity.Cart, bool) {
		return entity.NewCart(), true
	})
}

// ClearIfUnchanged empties the cart only while it is still at revision.
// Otherwise the cart is left alone and ErrCartChanged is returned.
func (s *Store) ClearIfUnchanged(ctx context.Context, revision uint64) (entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	if s.closed {
		return prev.cart, ErrStoreClosed
	}
	if prev.revision != revision {
		return prev.cart, ErrCartChanged
	}
	return s.commit(ctx, OpClear, prev, entity.NewCart())
}

// Close rejects every later mutation with ErrStoreClosed. It waits for an
// in-flight mutation to finish.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Store) mutate(ctx context.Context, op string, apply func(entity.Cart) (entity.Cart, bool)) (entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	if s.closed {
		return prev.cart, ErrStoreClosed
	}
	next, changed := apply(prev.cart)
	if !changed {
		return prev.cart, nil
	}
	return s.commit(ctx, op, prev, next)
}

// commit must be called with s.mu held.
func (s *Store) commit(ctx context.Context, op string, prev *snapshot, next entity.Cart) (entity.Cart, error) {
	data, err := entity.EncodeCart(next)
	if err != nil {
		return prev.cart, err
	}
	if err := s.slot.Put(ctx, s.key, data); err != nil {
		s.log.Errorf("Failed to persist cart after %s: %v", op, err)
		return prev.cart, fmt.Errorf("failed to persist cart %s: %w", s.key, err)
	}

	s.current.Store(&snapshot{cart: next, revision: prev.revision + 1})

	change := CartChange{Key: s.key, Operation: op, Cart: next}
	for _, id := range s.order {
		s.listeners[id](ctx, change)
	}
	return next, nil
}

// Subscribe registers l for every committed change and returns a func that
// removes it again.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners[id] = l
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}
