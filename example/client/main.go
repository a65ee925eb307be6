// Command client logs in to a running catalog with the password grant and
// exercises a public and a protected endpoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
)

var (
	baseURL      = env("CATALOG_BASE_URL", "http://localhost:8080")
	clientID     = env("CATALOG_CLIENT_ID", "dscatalog")
	clientSecret = env("CATALOG_CLIENT_SECRET", "dscatalog123")
	username     = env("CATALOG_USERNAME", "maria@gmail.com")
	password     = env("CATALOG_PASSWORD", "123456")
)

func main() {
	ctx := context.Background()
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{"read", "write"},
		Endpoint: oauth2.Endpoint{
			TokenURL:  baseURL + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	tok, err := cfg.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	log.Printf("logged in as %v (principal %v), token expires %s",
		tok.Extra("displayName"), tok.Extra("principalId"), tok.Expiry.Format("15:04:05"))

	// public read, no token needed
	show(http.DefaultClient, http.MethodGet, "/products?size=3", "")

	client := cfg.Client(ctx, tok)
	show(client, http.MethodGet, "/clients?linesPerPage=3", "")
	show(client, http.MethodPost, "/categories", `{"name":"Example"}`)
}

func show(c *http.Client, method, path, body string) {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		log.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.Do(req)
	if err != nil {
		log.Printf("%s %s: %v", method, path, err)
		return
	}
	defer res.Body.Close()

	var v any
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		log.Printf("%s %s: %d (no json body)", method, path, res.StatusCode)
		return
	}
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Printf("%s %s -> %d\n%s\n", method, path, res.StatusCode, out)
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
