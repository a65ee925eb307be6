package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/legit-games/catalog-service/dto"
)

// HandleListCategoriesGin returns every category, ordered by name.
func (s *Server) HandleListCategoriesGin(c *gin.Context) {
	list, err := s.Categories.FindAll(c.Request.Context())
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCategories(list))
}

func (s *Server) HandleGetCategoryGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	cat, err := s.Categories.FindByID(c.Request.Context(), id)
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCategory(*cat))
}

func (s *Server) HandleCreateCategoryGin(c *gin.Context) {
	var req dto.CategoryRequest
	if !s.bindJSON(c, &req) {
		return
	}
	cat := req.ToModel()
	if err := s.Categories.Insert(c.Request.Context(), cat); err != nil {
		s.handleResourceError(c, err)
		return
	}
	s.created(c, cat.ID, dto.FromCategory(*cat))
}

func (s *Server) HandleUpdateCategoryGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !s.bindJSON(c, &req) {
		return
	}
	cat, err := s.Categories.Update(c.Request.Context(), id, req.ToModel().Name)
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCategory(*cat))
}

// HandleDeleteCategoryGin removes a category; one still used by a product yields 400.
func (s *Server) HandleDeleteCategoryGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	if err := s.Categories.Delete(c.Request.Context(), id); err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
