package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/generates"
	"github.com/legit-games/catalog-service/permission"
)

const accessTokenKey = "access_token"

// AuthorizationMiddleware verifies the bearer token, if any, and asks the engine
// whether the request may proceed. Public routes are served even when the
// presented token is invalid. Paths that are not in canonical form are refused
// up front: the router dispatches the raw path, so the engine must decide on
// exactly that path.
func (s *Server) AuthorizationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if p := c.Request.URL.Path; p != permission.CleanPath(p) {
			s.Logger.WarnContext(ctx, "non-canonical path refused", "method", c.Request.Method, "path", p)
			s.resourceError(c, http.StatusBadRequest, "Bad request", "Request path is not canonical")
			return
		}

		var (
			token     *generates.AccessToken
			verifyErr error
		)
		if raw, ok := BearerAuth(c.Request); ok {
			token, verifyErr = s.Generate.Verify(raw)
			if verifyErr != nil {
				s.Logger.WarnContext(ctx, "bearer token rejected", "error", verifyErr, "path", c.Request.URL.Path)
				token = nil
			}
		}

		d := s.Engine.Authorize(c.Request.Method, c.Request.URL.Path, token)
		if d.Allowed {
			if token != nil {
				c.Set(accessTokenKey, token)
			}
			c.Next()
			return
		}

		s.Logger.WarnContext(ctx, "request denied",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"reason", d.Reason.String(),
			"rule", d.Rule.String(),
		)
		if d.Reason == permission.ReasonUnauthenticated && verifyErr != nil {
			bearerError(c, "invalid_token", errors.Descriptions[errors.Kind(verifyErr)], http.StatusUnauthorized)
			return
		}
		switch d.Reason {
		case permission.ReasonForbidden:
			bearerError(c, errors.ErrAccessDenied.Error(), errors.Descriptions[errors.ErrForbidden], http.StatusForbidden)
		default:
			bearerError(c, "unauthorized", errors.Descriptions[errors.ErrUnauthenticated], http.StatusUnauthorized)
		}
	}
}

func bearerError(c *gin.Context, code, description string, status int) {
	if status == http.StatusUnauthorized {
		v := `Bearer realm="catalog"`
		if code == "invalid_token" {
			v += `, error="invalid_token", error_description="` + description + `"`
		}
		c.Header("WWW-Authenticate", v)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":             code,
		"error_description": description,
	})
}

// AccessTokenFromContext returns the verified token stored by AuthorizationMiddleware.
func AccessTokenFromContext(c *gin.Context) (*generates.AccessToken, bool) {
	v, ok := c.Get(accessTokenKey)
	if !ok {
		return nil, false
	}
	t, ok := v.(*generates.AccessToken)
	return t, ok
}
