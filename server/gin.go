package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/store"
)

const requestIDHeader = "X-Request-ID"

// NewGinEngine builds the Gin router with the token endpoint and the catalog resources.
// Every request, including unknown routes, passes through AuthorizationMiddleware.
func NewGinEngine(s *Server) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.CustomRecovery(s.recovery))
	r.Use(requestLogMiddleware(s.Logger))
	r.Use(s.parseFormMiddleware())
	r.Use(s.AuthorizationMiddleware())

	r.NoRoute(func(c *gin.Context) {
		s.resourceError(c, http.StatusNotFound, "Not found", "No handler for "+c.Request.URL.Path)
	})
	r.NoMethod(func(c *gin.Context) {
		s.resourceError(c, http.StatusMethodNotAllowed, "Method not allowed", c.Request.Method+" is not supported")
	})

	// Token endpoint
	r.POST("/oauth/token", s.HandleTokenRequestGin)

	categories := r.Group("/categories")
	categories.GET("", s.HandleListCategoriesGin)
	categories.GET("/:id", s.HandleGetCategoryGin)
	categories.POST("", s.HandleCreateCategoryGin)
	categories.PUT("/:id", s.HandleUpdateCategoryGin)
	categories.DELETE("/:id", s.HandleDeleteCategoryGin)

	products := r.Group("/products")
	products.GET("", s.HandleListProductsGin)
	products.GET("/:id", s.HandleGetProductGin)
	products.POST("", s.HandleCreateProductGin)
	products.PUT("/:id", s.HandleUpdateProductGin)
	products.DELETE("/:id", s.HandleDeleteProductGin)

	users := r.Group("/users")
	users.GET("", s.HandleListUsersGin)
	users.GET("/:id", s.HandleGetUserGin)
	users.POST("", s.HandleCreateUserGin)
	users.PUT("/:id", s.HandleUpdateUserGin)
	users.DELETE("/:id", s.HandleDeleteUserGin)

	clients := r.Group("/clients")
	clients.GET("", s.HandleListClientsGin)
	clients.GET("/:id", s.HandleGetClientGin)
	clients.POST("", s.HandleCreateClientGin)
	clients.PUT("/:id", s.HandleUpdateClientGin)
	clients.DELETE("/:id", s.HandleDeleteClientGin)

	return r
}

// parseFormMiddleware ensures r.ParseForm() is called for urlencoded/multipart requests so r.FormValue works.
// A body that does not parse is answered with invalid_request.
func (s *Server) parseFormMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := c.Request
		ct := r.Header.Get("Content-Type")
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
				if err := r.ParseForm(); err != nil {
					s.Logger.WarnContext(r.Context(), "malformed form body", "path", r.URL.Path, "error", err)
					s.tokenError(c, errors.ErrInvalidRequest)
					return
				}
			}
		}
		c.Next()
	}
}

// requestLogMiddleware tags the request with an id and logs one record once it completes.
func requestLogMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(store.WithRequestID(c.Request.Context(), id))

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request",
			slog.String("request_id", id),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

func (s *Server) recovery(c *gin.Context, recovered any) {
	s.Logger.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered, "path", c.Request.URL.Path)
	s.resourceError(c, http.StatusInternalServerError, "Internal error", "Unexpected error")
}
