package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/models"
	"gorm.io/gorm"
)

const categoriesCacheKey = "categories:all"

// CategoryStore provides operations for categories. The full list is served
// from Cache and invalidated on every write.
type CategoryStore struct {
	DB     *gorm.DB
	Cache  Cache
	TTL    time.Duration
	Logger *slog.Logger
}

func NewCategoryStore(db *gorm.DB, cache Cache, ttl time.Duration, logger *slog.Logger) *CategoryStore {
	if cache == nil {
		cache = NopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryStore{DB: db, Cache: cache, TTL: ttl, Logger: logger}
}

// FindAll returns every category ordered by name. Cache failures fall back to the database.
func (s *CategoryStore) FindAll(ctx context.Context) ([]models.Category, error) {
	if raw, ok, err := s.Cache.Get(ctx, categoriesCacheKey); err != nil {
		s.Logger.WarnContext(ctx, "category cache read failed", "error", err)
	} else if ok {
		var cached []models.Category
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	categories := []models.Category{}
	if err := s.DB.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(categories); err == nil {
		if err := s.Cache.Set(ctx, categoriesCacheKey, raw, s.TTL); err != nil {
			s.Logger.WarnContext(ctx, "category cache write failed", "error", err)
		}
	}
	return categories, nil
}

func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "Entity not found")
	}
	return &c, nil
}

func (s *CategoryStore) Insert(ctx context.Context, c *models.Category) error {
	c.ID = 0
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return translate(err, "")
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryStore) Update(ctx context.Context, id int64, name string) (*models.Category, error) {
	var c models.Category
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return translate(err, "Id not found %d", id)
		}
		c.Name = name
		return translate(tx.Save(&c).Error, "")
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &c, nil
}

// Delete removes an unreferenced category. A category still linked to a
// product fails with errors.ErrIntegrityViolation.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Category
		if err := tx.First(&c, id).Error; err != nil {
			return translate(err, "Id not found %d", id)
		}
		var refs int64
		if err := tx.Table("tb_product_category").Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return &errors.Error{Kind: errors.ErrIntegrityViolation, Message: "Integrity violation"}
		}
		return translate(tx.Delete(&c).Error, "")
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryStore) invalidate(ctx context.Context) {
	if err := s.Cache.Delete(ctx, categoriesCacheKey); err != nil {
		s.Logger.WarnContext(ctx, "category cache invalidation failed", "error", err)
	}
}
