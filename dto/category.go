package dto

import (
	"strings"

	"github.com/legit-games/catalog-service/models"
)

// CategoryRequest is the body of POST and PUT /categories.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=60"`
}

func (r CategoryRequest) ToModel() *models.Category {
	return &models.Category{Name: strings.TrimSpace(r.Name)}
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromCategory(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func FromCategories(cs []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(cs))
	for i, c := range cs {
		out[i] = FromCategory(c)
	}
	return out
}
