package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCartSlots_LocalBackends(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNopLogger()

	for _, backend := range []string{config.StorageBackendMemory, config.StorageBackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := &config.Config{Storage: config.StorageConfig{
				Backend:    backend,
				SQLitePath: filepath.Join(t.TempDir(), "cart.db"),
			}}

			slot, closeSlots, err := OpenCartSlots(ctx, cfg, log)
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeSlots(ctx)) }()

			require.NoError(t, slot.Put(ctx, "k", []byte(`[]`)))
			got, err := slot.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))
		})
	}
}

func TestOpenCartSlots_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: "etcd"}}

	_, _, err := OpenCartSlots(context.Background(), cfg, logger.NewNopLogger())
	assert.Error(t, err)
}
