package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/legit-games/catalog-service/dto"
	"github.com/legit-games/catalog-service/store"
)

// HandleListProductsGin pages products filtered by categoryId and a name fragment.
// Query: categoryId (0 = any), name, page, size, sort.
func (s *Server) HandleListProductsGin(c *gin.Context) {
	f := store.ProductFilter{
		CategoryID: int64(queryInt(c, "categoryId", 0)),
		Name:       strings.TrimSpace(c.Query("name")),
	}
	page, err := s.Products.Search(c.Request.Context(), f, pageable(c, store.Order{Property: "name"}))
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPage(page, dto.FromProduct))
}

func (s *Server) HandleGetProductGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	p, err := s.Products.FindByID(c.Request.Context(), id)
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(*p))
}

func (s *Server) HandleCreateProductGin(c *gin.Context) {
	var req dto.ProductRequest
	if !s.bindJSON(c, &req) {
		return
	}
	p := req.ToModel()
	if err := s.Products.Insert(c.Request.Context(), p, req.CategoryIDs()); err != nil {
		s.handleResourceError(c, err)
		return
	}
	s.created(c, p.ID, dto.FromProduct(*p))
}

// HandleUpdateProductGin overwrites a product and replaces its categories.
func (s *Server) HandleUpdateProductGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !s.bindJSON(c, &req) {
		return
	}
	p, err := s.Products.Update(c.Request.Context(), id, req.ToModel(), req.CategoryIDs())
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(*p))
}

func (s *Server) HandleDeleteProductGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	if err := s.Products.Delete(c.Request.Context(), id); err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
