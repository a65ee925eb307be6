package store

import (
	"context"
	"testing"
	"time"

	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryStore_FindAllUsesCache(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	cache, err := NewBuntCache(":memory:", "test:")
	require.NoError(t, err)
	defer cache.Close()

	cats := NewCategoryStore(db, cache, time.Minute, nil)
	ctx := context.Background()

	all, err := cats.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Books", "Computers", "Electronics"}, names(all))

	_, ok, err := cache.Get(ctx, categoriesCacheKey)
	require.NoError(t, err)
	assert.True(t, ok)

	// a row written behind the store's back stays invisible until invalidation
	require.NoError(t, db.Create(&models.Category{Name: "Garden"}).Error)
	all, err = cats.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, cats.Insert(ctx, &models.Category{Name: "Toys"}))
	all, err = cats.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestCategoryStore_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	cats := NewCategoryStore(db, nil, 0, nil)
	ctx := context.Background()

	c, err := cats.Update(ctx, f.books.ID, "Livros")
	require.NoError(t, err)
	assert.Equal(t, "Livros", c.Name)

	_, err = cats.Update(ctx, 999, "x")
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))

	require.NoError(t, cats.Delete(ctx, f.computers.ID))
	_, err = cats.FindByID(ctx, f.computers.ID)
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))

	err = cats.Delete(ctx, f.computers.ID)
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))
}

func TestCategoryStore_DeleteReferencedCategory(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	cats := NewCategoryStore(db, nil, 0, nil)
	products := NewProductStore(db)
	ctx := context.Background()

	p := &models.Product{Name: "The Lord of the Rings", Description: "Tolkien", Price: 90.5, Date: date(2020, 7, 13)}
	require.NoError(t, products.Insert(ctx, p, []int64{f.books.ID}))

	err := cats.Delete(ctx, f.books.ID)
	assert.True(t, errors.Is(err, errors.ErrIntegrityViolation), "got %v", err)
	assert.Equal(t, "Integrity violation", errors.Message(err))

	_, err = cats.FindByID(ctx, f.books.ID)
	assert.NoError(t, err)
}

func names(cs []models.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
