package server

import (
	"net/http"
	"strings"

	"github.com/legit-games/catalog-service/errors"
)

// ClientInfoHandler get client info from request
type ClientInfoHandler func(r *http.Request) (clientID, clientSecret string, err error)

// ClientFormHandler get client data from form
func ClientFormHandler(r *http.Request) (string, string, error) {
	clientID := r.Form.Get("client_id")
	if clientID == "" {
		return "", "", errors.ErrInvalidClient
	}
	clientSecret := r.Form.Get("client_secret")
	return clientID, clientSecret, nil
}

// ClientBasicHandler get client data from basic authorization
func ClientBasicHandler(r *http.Request) (string, string, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return "", "", errors.ErrInvalidClient
	}
	return username, password, nil
}

// ClientBasicOrFormHandler prefers HTTP Basic and falls back to form fields.
func ClientBasicOrFormHandler(r *http.Request) (string, string, error) {
	if id, secret, err := ClientBasicHandler(r); err == nil {
		return id, secret, nil
	}
	return ClientFormHandler(r)
}

// BearerAuth parse bearer token
func BearerAuth(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	prefix := "Bearer "
	token := ""

	if auth != "" && len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		token = strings.TrimSpace(auth[len(prefix):])
	}

	return token, token != ""
}
