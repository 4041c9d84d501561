package model

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Owned by the backend; the client holds
// read-only copies.
type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	Stock        int             `json:"stock"`
	CategoryName *string         `json:"categoryName,omitempty"` // Pointer for optional field
}

// CreateProductData is the create payload; it omits the backend-owned ID.
type CreateProductData struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Discount     decimal.Decimal `json:"discount"`
	Stock        int             `json:"stock" binding:"gte=0"`
	CategoryName *string         `json:"categoryName,omitempty"`
}

// UpdateProductData carries the same fields as CreateProductData.
type UpdateProductData = CreateProductData

// Category as returned by /products/categories.
type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ListParams are the query parameters accepted by the paged list endpoints.
type ListParams struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// Query encodes the parameters, omitting zero values.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// SearchParams are the filters accepted by /products/search alongside the
// query term itself.
type SearchParams struct {
	Page     int
	Limit    int
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Category string
}

// Query encodes the filters, omitting unset values.
func (p SearchParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.MinPrice != nil {
		q.Set("minPrice", p.MinPrice.String())
	}
	if p.MaxPrice != nil {
		q.Set("maxPrice", p.MaxPrice.String())
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	return q
}
