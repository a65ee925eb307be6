package server

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/legit-games/catalog-service/generates"
	"github.com/legit-games/catalog-service/models"
	"github.com/legit-games/catalog-service/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testClientID     = "dscatalog"
	testClientSecret = "dscatalog123"
	testSecret       = "MY-JWT-SECRET"
	testPassword     = "123456"
)

type testEnv struct {
	srv  *Server
	ts   *httptest.Server
	e    *httpexpect.Expect
	data seeded
}

type seeded struct {
	maria, alex, bob           models.User
	operator, admin            models.Role
	books, electronics, garden models.Category
	macbook                    models.Product
}

func testConfig() *AppConfig {
	cfg := &AppConfig{
		JWT:      JWTConfig{Secret: testSecret, Duration: 3600},
		OAuth:    OAuthConfig{ClientID: testClientID, ClientSecret: testClientSecret},
		Database: DatabaseConfig{Driver: "sqlite"},
	}
	cfg.applyDefaults()
	return cfg
}

// newTestEnv starts the full router on a fresh sqlite database with seeded
// roles, users (maria: OPERATOR+ADMIN, alex: OPERATOR, bob: none), categories and one product.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := store.Open("sqlite", filepath.Join(t.TempDir(), "catalog.db")+"?_foreign_keys=on", logger)
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	srv := NewServer(Options{
		Config:  testConfig(),
		DB:      db,
		Logger:  logger,
		Encoder: generates.BcryptEncoder{Cost: bcrypt.MinCost},
	})

	env := &testEnv{srv: srv}
	env.seed(t)
	env.ts = httptest.NewServer(NewGinEngine(srv))
	t.Cleanup(env.ts.Close)
	env.e = httpexpect.Default(t, env.ts.URL)
	return env
}

func (env *testEnv) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	s := env.srv

	op, err := s.Roles.Ensure(ctx, models.RoleOperator)
	require.NoError(t, err)
	adm, err := s.Roles.Ensure(ctx, models.RoleAdmin)
	require.NoError(t, err)
	env.data.operator, env.data.admin = *op, *adm

	hash, err := s.Encoder.Encode(testPassword)
	require.NoError(t, err)
	users := []struct {
		dst   *models.User
		first string
		email string
		roles []int64
	}{
		{&env.data.alex, "Alex", "alex@gmail.com", []int64{op.ID}},
		{&env.data.maria, "Maria", "maria@gmail.com", []int64{op.ID, adm.ID}},
		{&env.data.bob, "Bob", "bob@gmail.com", nil},
	}
	for _, u := range users {
		*u.dst = models.User{FirstName: u.first, LastName: "Brown", Email: u.email, Password: hash}
		require.NoError(t, s.Users.Insert(ctx, u.dst, u.roles))
	}

	for _, c := range []struct {
		dst  *models.Category
		name string
	}{{&env.data.books, "Books"}, {&env.data.electronics, "Electronics"}, {&env.data.garden, "Garden"}} {
		*c.dst = models.Category{Name: c.name}
		require.NoError(t, s.Categories.Insert(ctx, c.dst))
	}

	env.data.macbook = models.Product{
		Name:        "Macbook Pro",
		Description: "Laptop",
		Price:       1250,
		Date:        time.Date(2020, 7, 14, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Products.Insert(ctx, &env.data.macbook, []int64{env.data.electronics.ID}))
}

// login runs the password grant and returns the access token.
func (env *testEnv) login(email string) string {
	return env.e.POST("/oauth/token").
		WithBasicAuth(testClientID, testClientSecret).
		WithFormField("grant_type", "password").
		WithFormField("username", email).
		WithFormField("password", testPassword).
		Expect().
		Status(200).
		JSON().Object().Value("access_token").String().Raw()
}

func (env *testEnv) as(email string) *httpexpect.Expect {
	token := env.login(email)
	return env.e.Builder(func(req *httpexpect.Request) {
		req.WithHeader("Authorization", "Bearer "+token)
	})
}
