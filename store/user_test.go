package store

import (
	"context"
	"testing"

	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_InsertAndFindByEmail(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	users := NewUserStore(db)
	ctx := context.Background()

	u := &models.User{FirstName: "Maria", LastName: "Green", Email: "maria@gmail.com", Password: "hash"}
	require.NoError(t, users.Insert(ctx, u, []int64{f.operator.ID, f.admin.ID, f.admin.ID}))
	assert.NotZero(t, u.ID)

	got, err := users.FindByEmail(ctx, " maria@gmail.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.Password)
	assert.ElementsMatch(t, []string{models.RoleOperator, models.RoleAdmin}, got.RoleNames())

	_, err = users.FindByEmail(ctx, "nobody@gmail.com")
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))
}

func TestUserStore_InsertUnknownRole(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	users := NewUserStore(db)

	err := users.Insert(context.Background(), &models.User{Email: "x@gmail.com"}, []int64{999})
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))

	taken, err := users.EmailTaken(context.Background(), "x@gmail.com", 0)
	require.NoError(t, err)
	assert.False(t, taken, "failed insert must roll back")
}

func TestUserStore_DuplicateEmailIsIntegrityViolation(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	users := NewUserStore(db)
	ctx := context.Background()

	require.NoError(t, users.Insert(ctx, &models.User{Email: "alex@gmail.com"}, nil))
	err := users.Insert(ctx, &models.User{Email: "alex@gmail.com"}, nil)
	assert.True(t, errors.Is(err, errors.ErrIntegrityViolation), "got %v", err)
}

func TestUserStore_EmailTaken(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	users := NewUserStore(db)
	ctx := context.Background()

	alex := &models.User{Email: "alex@gmail.com"}
	require.NoError(t, users.Insert(ctx, alex, nil))

	taken, err := users.EmailTaken(ctx, "alex@gmail.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.EmailTaken(ctx, "alex@gmail.com", alex.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own e-mail is not a conflict on update")
}

func TestUserStore_UpdateReplacesRoles(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	users := NewUserStore(db)
	ctx := context.Background()

	u := &models.User{FirstName: "Alex", Email: "alex@gmail.com", Password: "hash"}
	require.NoError(t, users.Insert(ctx, u, []int64{f.operator.ID}))

	out, err := users.Update(ctx, u.ID, &models.User{FirstName: "Alexander", LastName: "Brown", Email: "alex.b@gmail.com"}, []int64{f.admin.ID})
	require.NoError(t, err)
	assert.Equal(t, "Alexander", out.FirstName)
	assert.Equal(t, "alex.b@gmail.com", out.Email)
	assert.Equal(t, "hash", out.Password)
	assert.Equal(t, []string{models.RoleAdmin}, out.RoleNames())

	_, err = users.Update(ctx, 404, &models.User{Email: "none@gmail.com"}, nil)
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))
}

func TestUserStore_PageAndDelete(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	users := NewUserStore(db)
	ctx := context.Background()

	for _, name := range []string{"Carol", "Alice", "Bob"} {
		require.NoError(t, users.Insert(ctx, &models.User{FirstName: name, Email: name + "@gmail.com"}, []int64{f.operator.ID}))
	}

	page, err := users.Page(ctx, NewPageable(0, 2, ParseSort("firstName,asc")...))
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages())
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Alice", page.Content[0].FirstName)
	assert.Equal(t, []string{models.RoleOperator}, page.Content[0].RoleNames())

	bob := page.Content[1]
	require.NoError(t, users.Delete(ctx, bob.ID))
	_, err = users.FindByID(ctx, bob.ID)
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))

	err = users.Delete(ctx, bob.ID)
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))
}
