package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/legit-games/catalog-service/generates"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationGate(t *testing.T) {
	env := newTestEnv(t)
	anon := env.e
	bob := env.as("bob@gmail.com")
	alex := env.as("alex@gmail.com")
	maria := env.as("maria@gmail.com")

	// public reads
	anon.GET("/categories").Expect().Status(http.StatusOK).JSON().Array().Length().IsEqual(3)
	anon.GET("/products").Expect().Status(http.StatusOK)

	// writes need OPERATOR or ADMIN
	anon.POST("/categories").WithJSON(gin.H{"name": "Toys"}).
		Expect().Status(http.StatusUnauthorized).
		JSON().Object().Value("error").IsEqual("unauthorized")
	bob.POST("/categories").WithJSON(gin.H{"name": "Toys"}).
		Expect().Status(http.StatusForbidden).
		JSON().Object().Value("error").IsEqual("access_denied")
	alex.POST("/categories").WithJSON(gin.H{"name": "Toys"}).
		Expect().Status(http.StatusCreated)

	// user management needs ADMIN
	alex.GET("/users").Expect().Status(http.StatusForbidden)
	maria.GET("/users").Expect().Status(http.StatusOK)

	// anything else only needs a valid token
	anon.GET("/clients").Expect().Status(http.StatusUnauthorized)
	bob.GET("/clients").Expect().Status(http.StatusOK)
}

func TestAuthorizationInvalidToken(t *testing.T) {
	env := newTestEnv(t)
	garbage := env.e.Builder(func(req *httpexpect.Request) {
		req.WithHeader("Authorization", "Bearer not-a-jwt")
	})

	// public routes ignore a bad token
	garbage.GET("/categories").Expect().Status(http.StatusOK)

	resp := garbage.POST("/products").WithJSON(gin.H{}).Expect().Status(http.StatusUnauthorized)
	resp.JSON().Object().Value("error").IsEqual("invalid_token")
	resp.Header("WWW-Authenticate").Contains(`error="invalid_token"`)
}

func TestAuthorizationExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	past := time.Now().Add(-2 * time.Hour)
	signed, err := env.srv.Generate.Sign(&generates.JWTAccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "maria@gmail.com",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
		Authorities: []string{"ADMIN"},
	})
	require.NoError(t, err)

	obj := env.e.GET("/users").
		WithHeader("Authorization", "Bearer "+signed).
		Expect().
		Status(http.StatusUnauthorized).
		JSON().Object()
	obj.Value("error").IsEqual("invalid_token")
	obj.Value("error_description").IsEqual("Access token expired")
}

func TestAuthorizationForgedToken(t *testing.T) {
	env := newTestEnv(t)
	forger := generates.NewJWTAccessGenerate("", []byte("another-secret"), jwt.SigningMethodHS256)
	signed, err := forger.Sign(&generates.JWTAccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "maria@gmail.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Authorities: []string{"ADMIN"},
	})
	require.NoError(t, err)

	env.e.DELETE("/categories/1").
		WithHeader("Authorization", "Bearer "+signed).
		Expect().
		Status(http.StatusUnauthorized).
		JSON().Object().Value("error").IsEqual("invalid_token")
}

func TestUnknownRoutesFallUnderCatchAll(t *testing.T) {
	env := newTestEnv(t)
	env.e.GET("/reports").Expect().Status(http.StatusUnauthorized)
	env.as("bob@gmail.com").GET("/reports").Expect().Status(http.StatusNotFound).
		JSON().Object().Value("path").IsEqual("/reports")
}

func TestAccessTokenFromContext(t *testing.T) {
	env := newTestEnv(t)
	token := env.login("alex@gmail.com")

	r := gin.New()
	r.Use(env.srv.AuthorizationMiddleware())
	r.GET("/me", func(c *gin.Context) {
		tok, ok := AccessTokenFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sub": tok.Subject, "principalId": tok.Extra.PrincipalID})
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	obj := httpexpect.Default(t, ts.URL).GET("/me").
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	obj.Value("sub").IsEqual("alex@gmail.com")
	obj.Value("principalId").IsEqual(env.data.alex.ID)
}

func TestAuthorizationRefusesNonCanonicalPaths(t *testing.T) {
	env := newTestEnv(t)
	alex := env.as("alex@gmail.com")
	bob := env.as("bob@gmail.com")

	cases := []struct {
		name string
		req  *httpexpect.Request
	}{
		{"operator updating a user through ..", alex.PUT("/users/..").WithJSON(gin.H{"firstName": "X", "email": "x@gmail.com"})},
		{"no-role delete through ..", bob.DELETE("/products/..")},
		{"dot segment", bob.DELETE("/categories/./1")},
		{"anonymous", env.e.DELETE("/users/..")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj := tc.req.Expect().Status(http.StatusBadRequest).JSON().Object()
			obj.Value("error").IsEqual("Bad request")
			obj.Value("message").IsEqual("Request path is not canonical")
		})
	}

	// nothing was changed behind the gate
	env.e.GET(fmt.Sprintf("/categories/%d", env.data.books.ID)).Expect().Status(http.StatusOK)
	env.as("maria@gmail.com").GET("/users").Expect().Status(http.StatusOK).
		JSON().Object().Value("totalElements").IsEqual(3)
}
