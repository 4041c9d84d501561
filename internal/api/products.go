package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"storefront/internal/model"
)

// ProductsAPI wraps the catalog endpoints. Reads go through the guest client
// so anonymous users are never blocked; mutations require the authenticated
// client.
type ProductsAPI struct {
	guest *Client
	auth  *Client
}

// NewProductsAPI creates a ProductsAPI over the two configured clients.
func NewProductsAPI(guest, auth *Client) *ProductsAPI {
	return &ProductsAPI{guest: guest, auth: auth}
}

// GetAll fetches a page of products.
func (p *ProductsAPI) GetAll(ctx context.Context, params model.ListParams) (Page[model.Product], error) {
	body, err := p.guest.Get(ctx, "/products", params.Query())
	if err != nil {
		return Page[model.Product]{Items: []model.Product{}}, err
	}
	return DecodePage[model.Product](body), nil
}

// GetByID fetches a single product.
func (p *ProductsAPI) GetByID(ctx context.Context, id int) (*model.Product, error) {
	body, err := p.guest.Get(ctx, fmt.Sprintf("/products/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var product model.Product
	if err := json.Unmarshal(unwrapData(body), &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &product, nil
}

// GetByCategory fetches a page of products within a category.
func (p *ProductsAPI) GetByCategory(ctx context.Context, category string, params model.ListParams) (Page[model.Product], error) {
	body, err := p.guest.Get(ctx, "/products/category/"+url.PathEscape(category), params.Query())
	if err != nil {
		return Page[model.Product]{Items: []model.Product{}}, err
	}
	return DecodePage[model.Product](body), nil
}

// GetCategories fetches the category list.
func (p *ProductsAPI) GetCategories(ctx context.Context) ([]model.Category, error) {
	body, err := p.guest.Get(ctx, "/products/categories", nil)
	if err != nil {
		return nil, err
	}
	return DecodePage[model.Category](body).Items, nil
}

// Search runs a product search with optional filters.
func (p *ProductsAPI) Search(ctx context.Context, query string, params model.SearchParams) (Page[model.Product], error) {
	q := params.Query()
	q.Set("q", query)
	body, err := p.guest.Get(ctx, "/products/search", q)
	if err != nil {
		return Page[model.Product]{Items: []model.Product{}}, err
	}
	return DecodePage[model.Product](body), nil
}

// Create adds a product. Admin only; the backend enforces the role.
func (p *ProductsAPI) Create(ctx context.Context, data model.CreateProductData) (*model.Product, error) {
	body, err := p.auth.Post(ctx, "/products", data)
	if err != nil {
		return nil, err
	}
	var product model.Product
	if err := json.Unmarshal(unwrapData(body), &product); err != nil {
		return nil, fmt.Errorf("failed to decode created product: %w", err)
	}
	return &product, nil
}

// Update replaces a product's fields. Admin only.
func (p *ProductsAPI) Update(ctx context.Context, id int, data model.UpdateProductData) (*model.Product, error) {
	body, err := p.auth.Put(ctx, fmt.Sprintf("/products/%d", id), data)
	if err != nil {
		return nil, err
	}
	var product model.Product
	if err := json.Unmarshal(unwrapData(body), &product); err != nil {
		return nil, fmt.Errorf("failed to decode updated product: %w", err)
	}
	return &product, nil
}

// Delete removes a product. Admin only.
func (p *ProductsAPI) Delete(ctx context.Context, id int) error {
	_, err := p.auth.Delete(ctx, fmt.Sprintf("/products/%d", id))
	return err
}
