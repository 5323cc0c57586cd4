package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSlotRepository_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "data", "cart.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartSlotRepository(db)

	_, err = repo.Get(ctx, "storefront_cart:s1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "storefront_cart:s1", []byte(`[]`)))
	require.NoError(t, repo.Put(ctx, "storefront_cart:s1", []byte(`[{"size":"M"}]`)))

	got, err := repo.Get(ctx, "storefront_cart:s1")
	require.NoError(t, err)
	assert.Equal(t, `[{"size":"M"}]`, string(got))

	require.NoError(t, repo.Delete(ctx, "storefront_cart:s1"))
	_, err = repo.Get(ctx, "storefront_cart:s1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCartSlotRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewCartSlotRepository(db).Put(ctx, "k", []byte(`[1]`)))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewCartSlotRepository(db).Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}

func TestCartSlotRepository_EmptyKey(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartSlotRepository(db)
	assert.ErrorIs(t, repo.Put(ctx, "", []byte(`[]`)), repository.ErrEmptyKey)
	_, err = repo.Get(ctx, "")
	assert.ErrorIs(t, err, repository.ErrEmptyKey)
}
