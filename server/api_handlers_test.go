package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/legit-games/catalog-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	env := newTestEnv(t)
	op := env.as("alex@gmail.com")

	list := env.e.GET("/categories").Expect().Status(http.StatusOK).JSON().Array()
	list.Value(0).Object().Value("name").IsEqual("Books")

	resp := op.POST("/categories").WithJSON(gin.H{"name": "Toys"}).Expect().Status(http.StatusCreated)
	id := int64(resp.JSON().Object().Value("id").Number().Raw())
	resp.Header("Location").HasSuffix(fmt.Sprintf("/categories/%d", id))

	// the cached list was invalidated by the insert
	env.e.GET("/categories").Expect().Status(http.StatusOK).JSON().Array().Length().IsEqual(4)

	op.PUT(fmt.Sprintf("/categories/%d", id)).WithJSON(gin.H{"name": "Games"}).
		Expect().Status(http.StatusOK).
		JSON().Object().Value("name").IsEqual("Games")
	env.e.GET(fmt.Sprintf("/categories/%d", id)).Expect().Status(http.StatusOK).
		JSON().Object().Value("name").IsEqual("Games")

	op.DELETE(fmt.Sprintf("/categories/%d", id)).Expect().Status(http.StatusNoContent)
	env.e.GET(fmt.Sprintf("/categories/%d", id)).Expect().Status(http.StatusNotFound).
		JSON().Object().Value("error").IsEqual("Resource not found")
}

func TestCategoryErrors(t *testing.T) {
	env := newTestEnv(t)
	op := env.as("alex@gmail.com")

	// still referenced by the seeded product
	obj := op.DELETE(fmt.Sprintf("/categories/%d", env.data.electronics.ID)).
		Expect().Status(http.StatusBadRequest).
		JSON().Object()
	obj.Value("error").IsEqual("Database exception")
	obj.Value("status").IsEqual(http.StatusBadRequest)

	op.PUT("/categories/999").WithJSON(gin.H{"name": "Nope"}).Expect().Status(http.StatusNotFound)
	op.DELETE("/categories/999").Expect().Status(http.StatusNotFound)
	env.e.GET("/categories/abc").Expect().Status(http.StatusBadRequest)

	errs := op.POST("/categories").WithJSON(gin.H{"name": ""}).
		Expect().Status(http.StatusUnprocessableEntity).
		JSON().Object().Value("errors").Array()
	errs.Length().IsEqual(1)
	errs.Value(0).Object().Value("fieldName").IsEqual("name")
}

func TestProductSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, p := range []struct {
		name string
		cat  int64
	}{
		{"PC Gamer", env.data.electronics.ID},
		{"The Lord of the Rings", env.data.books.ID},
		{"Rake and Shovel", env.data.garden.ID},
	} {
		prod := &models.Product{Name: p.name, Description: "x", Price: 10, Date: time.Now().UTC()}
		require.NoError(t, env.srv.Products.Insert(ctx, prod, []int64{p.cat}))
	}

	page := env.e.GET("/products").WithQuery("size", 2).
		Expect().Status(http.StatusOK).JSON().Object()
	page.Value("totalElements").IsEqual(4)
	page.Value("totalPages").IsEqual(2)
	page.Value("first").IsEqual(true)
	page.Value("content").Array().Length().IsEqual(2)

	env.e.GET("/products").WithQuery("categoryId", env.data.electronics.ID).
		Expect().Status(http.StatusOK).JSON().Object().
		Value("totalElements").IsEqual(2)

	content := env.e.GET("/products").WithQuery("name", "lord").
		Expect().Status(http.StatusOK).JSON().Object().
		Value("content").Array()
	content.Length().IsEqual(1)
	content.Value(0).Object().Value("categories").Array().Value(0).Object().Value("name").IsEqual("Books")

	env.e.GET("/products").WithQuery("sort", "price,desc").
		Expect().Status(http.StatusOK).JSON().Object().
		Value("content").Array().Value(0).Object().Value("name").IsEqual("Macbook Pro")
}

func TestProductCRUD(t *testing.T) {
	env := newTestEnv(t)
	op := env.as("alex@gmail.com")

	body := gin.H{
		"name":        "Smart TV",
		"description": "55 inches",
		"price":       2190.0,
		"imgUrl":      "https://img.example.com/tv.jpg",
		"date":        "2020-07-14T10:00:00Z",
		"categories":  []gin.H{{"id": env.data.electronics.ID}},
	}
	obj := op.POST("/products").WithJSON(body).Expect().Status(http.StatusCreated).JSON().Object()
	id := int64(obj.Value("id").Number().Raw())
	obj.Value("categories").Array().Length().IsEqual(1)

	body["price"] = 1990.0
	body["categories"] = []gin.H{{"id": env.data.books.ID}, {"id": env.data.garden.ID}}
	obj = op.PUT(fmt.Sprintf("/products/%d", id)).WithJSON(body).Expect().Status(http.StatusOK).JSON().Object()
	obj.Value("price").IsEqual(1990.0)
	obj.Value("categories").Array().Length().IsEqual(2)

	body["categories"] = []gin.H{{"id": 999}}
	op.PUT(fmt.Sprintf("/products/%d", id)).WithJSON(body).Expect().Status(http.StatusNotFound)

	op.DELETE(fmt.Sprintf("/products/%d", id)).Expect().Status(http.StatusNoContent)
	env.e.GET(fmt.Sprintf("/products/%d", id)).Expect().Status(http.StatusNotFound)
}

func TestProductValidation(t *testing.T) {
	env := newTestEnv(t)
	op := env.as("alex@gmail.com")

	obj := op.POST("/products").WithJSON(gin.H{
		"name":        "TV",
		"description": "",
		"price":       -1,
		"date":        time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	}).Expect().Status(http.StatusUnprocessableEntity).JSON().Object()
	obj.Value("error").IsEqual("Validation exception")

	fields := map[string]bool{}
	for _, v := range obj.Value("errors").Array().Iter() {
		fields[v.Object().Value("fieldName").String().Raw()] = true
	}
	assert.Equal(t, map[string]bool{"name": true, "description": true, "price": true, "date": true}, fields)
}

func TestUserCRUD(t *testing.T) {
	env := newTestEnv(t)
	admin := env.as("maria@gmail.com")

	page := admin.GET("/users").Expect().Status(http.StatusOK).JSON().Object()
	page.Value("totalElements").IsEqual(3)
	page.Value("content").Array().Value(0).Object().NotContainsKey("password")

	obj := admin.POST("/users").WithJSON(gin.H{
		"firstName": "Ana",
		"lastName":  "Lee",
		"email":     "ana@gmail.com",
		"password":  "abcdef",
		"roles":     []gin.H{{"id": env.data.operator.ID}},
	}).Expect().Status(http.StatusCreated).JSON().Object()
	obj.NotContainsKey("password")
	obj.Value("roles").Array().Value(0).Object().Value("authority").IsEqual("OPERATOR")
	id := int64(obj.Value("id").Number().Raw())

	// the new user can log in with the password set above
	env.e.POST("/oauth/token").
		WithBasicAuth(testClientID, testClientSecret).
		WithFormField("grant_type", "password").
		WithFormField("username", "ana@gmail.com").
		WithFormField("password", "abcdef").
		Expect().Status(http.StatusOK)

	admin.PUT(fmt.Sprintf("/users/%d", id)).WithJSON(gin.H{
		"firstName": "Ana",
		"email":     "ana.lee@gmail.com",
		"roles":     []gin.H{{"id": env.data.admin.ID}},
	}).Expect().Status(http.StatusOK).
		JSON().Object().Value("roles").Array().Value(0).Object().Value("authority").IsEqual("ADMIN")

	admin.DELETE(fmt.Sprintf("/users/%d", id)).Expect().Status(http.StatusNoContent)
	admin.GET(fmt.Sprintf("/users/%d", id)).Expect().Status(http.StatusNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	admin := env.as("maria@gmail.com")

	obj := admin.POST("/users").WithJSON(gin.H{
		"firstName": "Other",
		"email":     "alex@gmail.com",
		"password":  "abcdef",
	}).Expect().Status(http.StatusUnprocessableEntity).JSON().Object()
	e := obj.Value("errors").Array().Value(0).Object()
	e.Value("fieldName").IsEqual("email")
	e.Value("message").IsEqual("Email already exists")

	// updating to another user's e-mail is rejected, keeping one's own is not
	admin.PUT(fmt.Sprintf("/users/%d", env.data.bob.ID)).WithJSON(gin.H{
		"firstName": "Bob",
		"email":     "alex@gmail.com",
	}).Expect().Status(http.StatusUnprocessableEntity)
	admin.PUT(fmt.Sprintf("/users/%d", env.data.bob.ID)).WithJSON(gin.H{
		"firstName": "Bobby",
		"email":     "bob@gmail.com",
	}).Expect().Status(http.StatusOK)
}

func TestUserValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.as("maria@gmail.com")

	fields := map[string]bool{}
	arr := admin.POST("/users").WithJSON(gin.H{"email": "not-an-email", "password": "123"}).
		Expect().Status(http.StatusUnprocessableEntity).
		JSON().Object().Value("errors").Array()
	for _, v := range arr.Iter() {
		fields[v.Object().Value("fieldName").String().Raw()] = true
	}
	assert.Equal(t, map[string]bool{"firstName": true, "email": true, "password": true}, fields)

	admin.POST("/users").WithJSON(gin.H{
		"firstName": "Ana",
		"email":     "ana@gmail.com",
		"password":  "abcdef",
		"roles":     []gin.H{{"id": 999}},
	}).Expect().Status(http.StatusNotFound)
}

func TestClientCRUD(t *testing.T) {
	env := newTestEnv(t)
	user := env.as("bob@gmail.com")

	for _, c := range []gin.H{
		{"name": "Conceição Evaristo", "cpf": "10619244881", "income": 1500.0, "birthDate": "1996-12-23", "children": 2},
		{"name": "Lázaro Ramos", "cpf": "10619244882", "income": 2500.0, "birthDate": "1996-12-23", "children": 2},
	} {
		user.POST("/clients").WithJSON(c).Expect().Status(http.StatusCreated)
	}

	page := user.GET("/clients").
		WithQuery("linesPerPage", 1).
		WithQuery("orderBy", "income").
		WithQuery("direction", "DESC").
		Expect().Status(http.StatusOK).JSON().Object()
	page.Value("totalElements").IsEqual(2)
	first := page.Value("content").Array().Value(0).Object()
	first.Value("name").IsEqual("Lázaro Ramos")
	first.Value("birthDate").IsEqual("1996-12-23")
	id := int64(first.Value("id").Number().Raw())

	user.PUT(fmt.Sprintf("/clients/%d", id)).WithJSON(gin.H{
		"name": "Lázaro Ramos", "cpf": "10619244882", "income": 3000.0, "birthDate": "1978-11-01", "children": 3,
	}).Expect().Status(http.StatusOK).JSON().Object().Value("children").IsEqual(3)

	user.POST("/clients").WithJSON(gin.H{
		"name": "Future", "cpf": "10619244883", "birthDate": time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
	}).Expect().Status(http.StatusUnprocessableEntity).
		JSON().Object().Value("errors").Array().Value(0).Object().Value("fieldName").IsEqual("birthDate")

	user.DELETE(fmt.Sprintf("/clients/%d", id)).Expect().Status(http.StatusNoContent)
	user.DELETE(fmt.Sprintf("/clients/%d", id)).Expect().Status(http.StatusNotFound)
}
