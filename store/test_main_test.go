package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/legit-games/catalog-service/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh sqlite database with foreign keys enforced.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "catalog.db") + "?_foreign_keys=on"
	db, err := Open("sqlite", dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fixtures struct {
	operator, admin models.Role
	books, electronics, computers models.Category
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	ctx := context.Background()
	roles := NewRoleStore(db)
	op, err := roles.Ensure(ctx, models.RoleOperator)
	require.NoError(t, err)
	adm, err := roles.Ensure(ctx, models.RoleAdmin)
	require.NoError(t, err)

	f := fixtures{operator: *op, admin: *adm}
	cats := NewCategoryStore(db, nil, 0, nil)
	f.books.Name, f.electronics.Name, f.computers.Name = "Books", "Electronics", "Computers"
	for _, c := range []*models.Category{&f.books, &f.electronics, &f.computers} {
		require.NoError(t, cats.Insert(ctx, c))
	}
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
