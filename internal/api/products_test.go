package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// newCatalog wires a ProductsAPI whose reads hit srv as a guest and whose
// mutations carry the given token.
func newCatalog(srv *httptest.Server, token string) *ProductsAPI {
	guest := NewGuest(srv.URL, time.Second)
	auth := NewAuthenticated(srv.URL, time.Second, &stubTokens{token: token}, nil)
	return NewProductsAPI(guest, auth)
}

func TestProductsAPI_GetAll_NestedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"data":{"data":[{"id":1,"name":"Desk","price":"120.50"}],"total":31}}`))
	}))
	defer srv.Close()

	page, err := newCatalog(srv, "").GetAll(context.Background(), model.ListParams{Page: 2})

	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "Desk", page.Items[0].Name)
	assert.True(t, page.Items[0].Price.Equal(decimal.NewFromFloat(120.50)))
	assert.Equal(t, 31, page.Total)
}

func TestProductsAPI_Search_FlatEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "desk", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("minPrice"))
		w.Write([]byte(`{"data":[{"id":1,"name":"Desk"}],"total":1}`))
	}))
	defer srv.Close()

	min := decimal.NewFromInt(10)
	page, err := newCatalog(srv, "").Search(context.Background(), "desk", model.SearchParams{MinPrice: &min})

	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Total)
}

func TestProductsAPI_GetByCategory_BareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/office%20chairs", r.URL.EscapedPath())
		w.Write([]byte(`[{"id":1,"name":"Chair"},{"id":2,"name":"Stool"}]`))
	}))
	defer srv.Close()

	page, err := newCatalog(srv, "").GetByCategory(context.Background(), "office chairs", model.ListParams{})

	assert.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
}

func TestProductsAPI_GetByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		w.Write([]byte(`{"data":{"id":7,"name":"Lamp","price":"15.00","stock":3}}`))
	}))
	defer srv.Close()

	product, err := newCatalog(srv, "").GetByID(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 7, product.ID)
	assert.Equal(t, 3, product.Stock)
}

func TestProductsAPI_GetByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"product not found"}`))
	}))
	defer srv.Close()

	_, err := newCatalog(srv, "").GetByID(context.Background(), 99)

	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestProductsAPI_GetCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"chairs"},{"id":2,"name":"desks"}]`))
	}))
	defer srv.Close()

	categories, err := newCatalog(srv, "").GetCategories(context.Background())

	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "chairs", categories[0].Name)
}

func TestProductsAPI_Create_UsesAuthenticatedClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer admin-tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":12,"name":"Lamp","price":"15.00"}`))
	}))
	defer srv.Close()

	product, err := newCatalog(srv, "admin-tok").Create(context.Background(), model.CreateProductData{
		Name:  "Lamp",
		Price: decimal.NewFromInt(15),
	})

	assert.NoError(t, err)
	assert.Equal(t, 12, product.ID)
}

func TestProductsAPI_Delete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"message":"Product deleted successfully"}`))
	}))
	defer srv.Close()

	err := newCatalog(srv, "admin-tok").Delete(context.Background(), 12)

	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/products/12", gotPath)
}
