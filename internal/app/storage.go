package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/memory"
	mongoadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/mongo"
	redisadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/redis"
	sqliteadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/sqlite"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

type closeFunc func(context.Context) error

func noopClose(context.Context) error { return nil }

// OpenCartSlots connects the storage backend selected by cfg.Storage.Backend
// and returns the slot repository with the func that releases it.
func OpenCartSlots(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.CartSlotRepository, closeFunc, error) {
	backend := strings.ToLower(cfg.Storage.Backend)
	log.Infof("Initializing %s cart storage...", backend)

	switch backend {
	case config.StorageBackendRedis:
		client, err := redisadapter.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		closer := func(context.Context) error { return client.Close() }
		return redisadapter.NewCartSlotRepository(client, cfg.Storage.TTL), closer, nil

	case config.StorageBackendMongo:
		client, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}
		return mongoadapter.NewCartSlotRepository(client, cfg.MongoDB), client.Disconnect, nil

	case config.StorageBackendSQLite:
		db, err := sqliteadapter.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SQLite storage: %w", err)
		}
		closer := func(context.Context) error { return db.Close() }
		return sqliteadapter.NewCartSlotRepository(db), closer, nil

	case config.StorageBackendMemory:
		log.Warn("Memory cart storage selected: carts are lost on restart")
		return memory.NewCartSlotRepository(), noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
