package dto

import (
	"strings"
	"time"

	"github.com/legit-games/catalog-service/models"
)

// CategoryRef links a product to an existing category by id.
type CategoryRef struct {
	ID int64 `json:"id" binding:"required,gt=0"`
}

// ProductRequest is the body of POST and PUT /products.
type ProductRequest struct {
	Name        string        `json:"name" binding:"required,min=5,max=60"`
	Description string        `json:"description" binding:"required"`
	Price       float64       `json:"price" binding:"gt=0"`
	ImgURL      string        `json:"imgUrl" binding:"omitempty,url"`
	Date        time.Time     `json:"date" binding:"required,pastorpresent"`
	Categories  []CategoryRef `json:"categories" binding:"dive"`
}

func (r ProductRequest) ToModel() *models.Product {
	return &models.Product{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Price:       r.Price,
		ImgURL:      r.ImgURL,
		Date:        r.Date.UTC(),
	}
}

func (r ProductRequest) CategoryIDs() []int64 {
	ids := make([]int64, len(r.Categories))
	for i, c := range r.Categories {
		ids[i] = c.ID
	}
	return ids
}

type ProductResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	ImgURL      string             `json:"imgUrl"`
	Date        time.Time          `json:"date"`
	Categories  []CategoryResponse `json:"categories"`
}

func FromProduct(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImgURL:      p.ImgURL,
		Date:        p.Date.UTC(),
		Categories:  FromCategories(p.Categories),
	}
}
