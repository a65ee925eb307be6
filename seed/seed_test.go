package seed

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/legit-games/catalog-service/migrate"
	"github.com/legit-games/catalog-service/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, migrate.Run(migrate.Options{Driver: "sqlite", DSN: path}))
	require.NoError(t, Run(Options{Driver: "sqlite", DSN: path}))

	db, err := store.Open("sqlite", path+"?_foreign_keys=on", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	ctx := context.Background()

	maria, err := store.NewUserStore(db).FindByEmail(ctx, "maria@gmail.com")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"OPERATOR", "ADMIN"}, maria.RoleNames())

	cats, err := store.NewCategoryStore(db, nil, 0, nil).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)

	page, err := store.NewProductStore(db).Search(ctx, store.ProductFilter{CategoryID: cats[0].ID}, store.NewPageable(0, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalElements) // Books holds only The Lord of the Rings

	// the referenced category cannot be removed
	assert.Error(t, store.NewCategoryStore(db, nil, 0, nil).Delete(ctx, cats[0].ID))
}

func TestHasValidSeedFiles(t *testing.T) {
	assert.True(t, hasValidSeedFiles(seedFS, nil))
	assert.False(t, hasValidSeedFiles(fstest.MapFS{"sql/readme.sql": {}}, nil))
	assert.False(t, hasValidSeedFiles(fstest.MapFS{}, nil))
}
