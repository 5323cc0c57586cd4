package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultSlotCollectionName = "cart_slots"
)

type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type cartSlotRepository struct {
	collection *mongo.Collection
}

func NewCartSlotRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.CartSlotRepository {
	name := cfg.Collection
	if name == "" {
		name = defaultSlotCollectionName
	}
	return &cartSlotRepository{
		collection: client.Database(cfg.Database).Collection(name),
	}
}

func (r *cartSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}

	var doc slotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get cart slot %s: %w", repository.ErrQueryFailed, key, err)
	}
	return doc.Value, nil
}

func (r *cartSlotRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}

	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: failed to save cart slot %s: %w", repository.ErrQueryFailed, key, err)
	}
	return nil
}

func (r *cartSlotRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("%w: failed to delete cart slot %s: %w", repository.ErrQueryFailed, key, err)
	}
	return nil
}
