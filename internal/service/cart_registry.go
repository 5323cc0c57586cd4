package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

const DefaultSessionID = "default"

type RegistryOption func(*CartRegistry)

// WithListeners attaches ls to every store the registry opens.
func WithListeners(ls ...Listener) RegistryOption {
	return func(r *CartRegistry) {
		r.listeners = append(r.listeners, ls...)
	}
}

func WithRegistryMetrics(m *metrics.MetricsManager) RegistryOption {
	return func(r *CartRegistry) {
		r.metrics = m
	}
}

// CartRegistry lazily opens one Store per shopper session and keeps it for
// the life of the process.
type CartRegistry struct {
	mu        sync.Mutex
	slot      repository.CartSlotRepository
	baseKey   string
	log       logger.Logger
	metrics   *metrics.MetricsManager
	listeners []Listener
	stores    map[string]*Store
}

func NewCartRegistry(slot repository.CartSlotRepository, baseKey string, log logger.Logger, opts ...RegistryOption) *CartRegistry {
	r := &CartRegistry{
		slot:    slot,
		baseKey: baseKey,
		log:     log,
		stores:  make(map[string]*Store),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SlotKey is the persistence key for sessionID.
func (r *CartRegistry) SlotKey(sessionID string) string {
	return r.baseKey + ":" + normalizeSession(sessionID)
}

// Store returns the store of sessionID, opening it on first use. A failed
// open is not cached, so the next call retries.
func (r *CartRegistry) Store(ctx context.Context, sessionID string) (*Store, error) {
	sessionID = normalizeSession(sessionID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[sessionID]; ok {
		return s, nil
	}

	s, err := OpenStore(ctx, r.slot, r.SlotKey(sessionID), r.log)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart for session %s: %w", sessionID, err)
	}
	for _, l := range r.listeners {
		s.Subscribe(l)
	}
	r.stores[sessionID] = s

	if r.metrics != nil {
		r.metrics.CartStoresOpen.Inc()
		if s.Recovered() {
			r.metrics.CartRecoveriesTotal.Inc()
		}
	}
	r.log.Debugf("Opened cart store for session %s", sessionID)
	return s, nil
}

// Purge closes and forgets the open store of sessionID, then deletes its
// persisted cart. Holders of the old store get ErrStoreClosed from any later
// mutation. Listeners are not notified.
func (r *CartRegistry) Purge(ctx context.Context, sessionID string) error {
	sessionID = normalizeSession(sessionID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[sessionID]; ok {
		s.Close()
		delete(r.stores, sessionID)
		if r.metrics != nil {
			r.metrics.CartStoresOpen.Dec()
		}
	}
	if err := r.slot.Delete(ctx, r.SlotKey(sessionID)); err != nil {
		return fmt.Errorf("failed to purge cart for session %s: %w", sessionID, err)
	}
	return nil
}

func (r *CartRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

func normalizeSession(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultSessionID
	}
	return id
}
