package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/generates"
	"github.com/legit-games/catalog-service/permission"
	"github.com/legit-games/catalog-service/store"
	"gorm.io/gorm"
)

// Options carries the collaborators of a Server.
type Options struct {
	Config  *AppConfig
	DB      *gorm.DB
	Cache   store.Cache
	Logger  *slog.Logger
	Encoder generates.PasswordEncoder
	Table   *permission.Table
	// Now overrides the token clock; nil means time.Now.
	Now func() time.Time
}

// Server wires the token pipeline, the route gate and the resource stores.
type Server struct {
	Config            *AppConfig
	Logger            *slog.Logger
	Generate          *generates.JWTAccessGenerate
	Issuer            *generates.TokenIssuer
	Engine            *permission.Engine
	Encoder           generates.PasswordEncoder
	Users             *store.UserStore
	Roles             *store.RoleStore
	Categories        *store.CategoryStore
	Products          *store.ProductStore
	Clients           *store.ClientStore
	ClientInfoHandler ClientInfoHandler

	now func() time.Time
}

// NewServer builds a Server from opts. Config must already be validated.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	enc := opts.Encoder
	if enc == nil {
		enc = generates.BcryptEncoder{}
	}
	table := opts.Table
	if table == nil {
		table = permission.DefaultTable()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	gen := generates.NewJWTAccessGenerate("", []byte(opts.Config.JWT.Secret), jwt.SigningMethodHS256)
	gen.Now = now

	users := store.NewUserStore(opts.DB)
	return &Server{
		Config:            opts.Config,
		Logger:            logger,
		Generate:          gen,
		Issuer:            generates.NewTokenIssuer(gen, users, enc, opts.Config.OAuth.ClientID, opts.Config.JWT.Lifetime()),
		Engine:            permission.NewEngine(table),
		Encoder:           enc,
		Users:             users,
		Roles:             store.NewRoleStore(opts.DB),
		Categories:        store.NewCategoryStore(opts.DB, opts.Cache, opts.Config.Cache.TTL, logger),
		Products:          store.NewProductStore(opts.DB),
		Clients:           store.NewClientStore(opts.DB),
		ClientInfoHandler: ClientBasicOrFormHandler,
		now:               now,
	}
}

// token writes a token endpoint response.
func (s *Server) token(c *gin.Context, data map[string]interface{}, header http.Header, statusCode ...int) {
	w := c.Writer
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	for key := range header {
		w.Header().Set(key, header.Get(key))
	}

	status := http.StatusOK
	if len(statusCode) > 0 && statusCode[0] > 0 {
		status = statusCode[0]
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.Logger.ErrorContext(c.Request.Context(), "write token response", "error", err)
	}
	c.Abort()
}

func (s *Server) tokenError(c *gin.Context, err error) {
	data, statusCode, header := s.GetErrorData(err)
	s.token(c, data, header, statusCode)
}

// GetErrorData maps err onto an OAuth2 error body, status code and headers.
// Internal failures collapse to server_error.
func (s *Server) GetErrorData(err error) (map[string]interface{}, int, http.Header) {
	re := oauthResponse(err)

	data := make(map[string]interface{})
	if err := re.Error; err != nil {
		data["error"] = err.Error()
	}
	if v := re.Description; v != "" {
		data["error_description"] = v
	}
	if v := re.URI; v != "" {
		data["error_uri"] = v
	}

	statusCode := http.StatusInternalServerError
	if v := re.StatusCode; v > 0 {
		statusCode = v
	}
	return data, statusCode, re.Header
}

func oauthResponse(err error) *errors.Response {
	kind := errors.Kind(err)
	switch kind {
	case errors.ErrInvalidCredentials:
		kind = errors.ErrInvalidGrant
	case errors.ErrPrincipalResolution:
		kind = errors.ErrServerError
	}

	re := errors.NewResponse(kind, errors.StatusCodes[kind])
	re.Description = errors.Descriptions[kind]
	if kind == errors.ErrInvalidClient {
		re.SetHeader("WWW-Authenticate", `Basic realm="oauth2/client"`)
	}
	return re
}
