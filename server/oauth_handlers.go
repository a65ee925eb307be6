package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/generates"
)

const grantTypePassword = "password"

// TokenRequest is a validated password-grant request.
type TokenRequest struct {
	ClientID string
	Username string
	Password string
	Scope    string
}

// ValidationTokenRequest the token request validation
func (s *Server) ValidationTokenRequest(r *http.Request) (*TokenRequest, error) {
	if r.Method != http.MethodPost {
		return nil, errors.ErrInvalidRequest
	}

	clientID, clientSecret, err := s.ClientInfoHandler(r)
	if err != nil {
		return nil, err
	}
	if !s.checkClient(clientID, clientSecret) {
		return nil, errors.ErrInvalidClient
	}

	gt := r.FormValue("grant_type")
	if gt == "" {
		return nil, errors.ErrInvalidRequest
	}
	if gt != grantTypePassword {
		return nil, errors.ErrUnsupportedGrantType
	}

	req := &TokenRequest{
		ClientID: clientID,
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
		Scope:    r.FormValue("scope"),
	}
	if req.Username == "" || req.Password == "" {
		return nil, errors.ErrInvalidRequest
	}
	if !scopeAllowed(req.Scope, generates.DefaultScopes) {
		return nil, errors.ErrInvalidScope
	}
	return req, nil
}

func (s *Server) checkClient(id, secret string) bool {
	want := s.Config.OAuth
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(want.ClientID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(want.ClientSecret)) == 1
	return idOK && secretOK
}

// scopeAllowed reports whether every space-delimited scope in requested is granted.
// An empty request means the default grant.
func scopeAllowed(requested string, granted []string) bool {
	for _, sc := range strings.Fields(requested) {
		found := false
		for _, g := range granted {
			if sc == g {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// GetTokenData token data
func (s *Server) GetTokenData(t *generates.AccessToken, signed string) map[string]interface{} {
	data := map[string]interface{}{
		"access_token": signed,
		"token_type":   "bearer",
		"expires_in":   t.ExpiresIn(s.now()),
		"scope":        t.Scope(),
		"jti":          t.ID,
	}
	if t.Extra != nil {
		data["displayName"] = t.Extra.DisplayName
		data["principalId"] = t.Extra.PrincipalID
	}
	return data
}

// HandleTokenRequestGin issues an access token for the resource-owner password grant.
func (s *Server) HandleTokenRequestGin(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := s.ValidationTokenRequest(c.Request)
	if err != nil {
		s.Logger.WarnContext(ctx, "token request rejected", "error", err)
		s.tokenError(c, err)
		return
	}

	token, signed, err := s.Issuer.Issue(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrInvalidCredentials):
			s.Logger.WarnContext(ctx, "login failed", "email", req.Username)
		default:
			s.Logger.ErrorContext(ctx, "token issuance failed", "email", req.Username, "error", err)
		}
		s.tokenError(c, err)
		return
	}

	s.Logger.InfoContext(ctx, "token issued", "email", req.Username, "jti", token.ID)
	s.token(c, s.GetTokenData(token, signed), nil)
}
