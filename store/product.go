package store

import (
	"context"
	"strings"

	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/models"
	"gorm.io/gorm"
)

var productSortColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
	"date":  "date",
}

// ProductFilter narrows a product search. Zero values match everything.
type ProductFilter struct {
	CategoryID int64
	Name       string
}

type ProductStore struct {
	DB *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore { return &ProductStore{DB: db} }

// Search pages products in the given category whose name contains f.Name,
// case-insensitively.
func (s *ProductStore) Search(ctx context.Context, f ProductFilter, p Pageable) (Page[models.Product], error) {
	q := s.DB.WithContext(ctx).Model(&models.Product{})
	if f.CategoryID > 0 {
		q = q.Where("id IN (?)", s.DB.Table("tb_product_category").Select("product_id").Where("category_id = ?", f.CategoryID))
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	return paginate[models.Product](q, p, productSortColumns, "Categories")
}

func (s *ProductStore) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).Preload("Categories").First(&p, id).Error; err != nil {
		return nil, translate(err, "Entity not found")
	}
	return &p, nil
}

// Insert stores p linked to the categories in categoryIDs.
func (s *ProductStore) Insert(ctx context.Context, p *models.Product, categoryIDs []int64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats, err := loadCategories(tx, categoryIDs)
		if err != nil {
			return err
		}
		p.ID = 0
		p.Categories = nil
		if err := tx.Omit("Categories").Create(p).Error; err != nil {
			return translate(err, "")
		}
		if len(cats) > 0 {
			if err := tx.Model(p).Association("Categories").Append(cats); err != nil {
				return translate(err, "")
			}
		}
		p.Categories = cats
		return nil
	})
}

// Update overwrites the fields of product id and replaces its category set.
func (s *ProductStore) Update(ctx context.Context, id int64, in *models.Product, categoryIDs []int64) (*models.Product, error) {
	var out models.Product
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, id).Error; err != nil {
			return translate(err, "Id not found %d", id)
		}
		cats, err := loadCategories(tx, categoryIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(&out).Updates(map[string]interface{}{
			"name":        in.Name,
			"description": in.Description,
			"price":       in.Price,
			"img_url":     in.ImgURL,
			"date":        in.Date,
		}).Error; err != nil {
			return translate(err, "")
		}
		if err := tx.Model(&out).Association("Categories").Replace(cats); err != nil {
			return translate(err, "")
		}
		return tx.Preload("Categories").First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			return translate(err, "Id not found %d", id)
		}
		if err := tx.Model(&p).Association("Categories").Clear(); err != nil {
			return translate(err, "")
		}
		return translate(tx.Delete(&p).Error, "")
	})
}

func loadCategories(tx *gorm.DB, ids []int64) ([]models.Category, error) {
	ids = distinct(ids)
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	var cats []models.Category
	if err := tx.Where("id IN ?", ids).Order("id").Find(&cats).Error; err != nil {
		return nil, err
	}
	if len(cats) != len(ids) {
		return nil, errors.NotFound("Category not found")
	}
	return cats, nil
}
