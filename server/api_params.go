package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/legit-games/catalog-service/store"
)

// pathID reads the :id parameter. It writes a 400 and returns false when the id is not a positive integer.
func (s *Server) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.resourceError(c, http.StatusBadRequest, "Bad request", fmt.Sprintf("Invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) int {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// pageable reads page, size and sort (repeatable, "field,desc").
func pageable(c *gin.Context, defaultSort ...store.Order) store.Pageable {
	sort := store.ParseSort(c.QueryArray("sort")...)
	if len(sort) == 0 {
		sort = defaultSort
	}
	return store.NewPageable(queryInt(c, "page", 0), queryInt(c, "size", store.DefaultPageSize), sort...)
}

// clientPageable reads the client listing parameters page, linesPerPage, direction and orderBy.
func clientPageable(c *gin.Context) store.Pageable {
	orderBy := strings.TrimSpace(c.DefaultQuery("orderBy", "name"))
	desc := strings.EqualFold(c.DefaultQuery("direction", "ASC"), "DESC")
	return store.NewPageable(
		queryInt(c, "page", 0),
		queryInt(c, "linesPerPage", store.DefaultPageSize),
		store.Order{Property: orderBy, Desc: desc},
	)
}

func (s *Server) created(c *gin.Context, id int64, body any) {
	c.Header("Location", fmt.Sprintf("%s/%d", strings.TrimRight(c.Request.URL.Path, "/"), id))
	c.JSON(http.StatusCreated, body)
}
