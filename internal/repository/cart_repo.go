package repository

import (
	"context"
)

// CartSlotRepository is the durable key-value slot a cart snapshot is written
// to. Values are opaque encoded carts; Get returns ErrNotFound for an empty slot.
type CartSlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
