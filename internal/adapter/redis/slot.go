package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

type cartSlotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartSlotRepository stores each slot as a plain string value. A zero ttl
// keeps the value until it is overwritten or deleted.
func NewCartSlotRepository(client *redis.Client, ttl time.Duration) repository.CartSlotRepository {
	return &cartSlotRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *cartSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get cart slot %s from redis: %w", repository.ErrQueryFailed, key, err)
	}
	return val, nil
}

func (r *cartSlotRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to save cart slot %s to redis: %w", repository.ErrQueryFailed, key, err)
	}
	return nil
}

func (r *cartSlotRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete cart slot %s from redis: %w", repository.ErrQueryFailed, key, err)
	}
	return nil
}
