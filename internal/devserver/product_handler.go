package devserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"storefront/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const defaultPageSize = 10

// ProductHandler handles catalog requests
type ProductHandler struct {
	products ProductRepository
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// List serves GET /products. The production API wraps this endpoint's items
// two levels deep; the fixture reproduces that shape.
func (h *ProductHandler) List(c *gin.Context) {
	filters := ProductFilters{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	items, total, err := h.products.List(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"data": items, "total": total},
	})
}

// Search serves GET /products/search with a single-level envelope.
func (h *ProductHandler) Search(c *gin.Context) {
	filters := ProductFilters{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}
	if v := c.Query("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filters.MinPrice = &d
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filters.MaxPrice = &d
		}
	}

	items, total, err := h.products.List(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error searching products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to search products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items, "total": total})
}

// ByCategory serves GET /products/category/:category as a bare array.
func (h *ProductHandler) ByCategory(c *gin.Context) {
	filters := ProductFilters{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Category: c.Param("category"),
	}

	items, _, err := h.products.List(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error listing products by category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list categories"})
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error finding product %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req model.CreateProductData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	product := &model.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Discount:     req.Discount,
		Stock:        req.Stock,
		CategoryName: req.CategoryName,
	}
	if err := h.products.Create(c.Request.Context(), product); err != nil {
		log.Printf("Error creating product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	var req model.UpdateProductData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	existing, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error finding product %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Discount = req.Discount
	existing.Stock = req.Stock
	existing.CategoryName = req.CategoryName

	if err := h.products.Update(c.Request.Context(), existing); err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, existing)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		log.Printf("Error deleting product %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// RegisterProductRoutes registers catalog routes. Reads are open; mutations
// sit behind the JWT and admin-role middleware.
func (h *ProductHandler) RegisterProductRoutes(rg *gin.RouterGroup, authRequired ...gin.HandlerFunc) {
	productGroup := rg.Group("/products")
	{
		productGroup.GET("", h.List)
		productGroup.GET("/search", h.Search)
		productGroup.GET("/categories", h.Categories)
		productGroup.GET("/category/:category", h.ByCategory)
		productGroup.GET("/:id", h.GetByID)

		adminGroup := productGroup.Group("", authRequired...)
		adminGroup.POST("", h.Create)
		adminGroup.PUT("/:id", h.Update)
		adminGroup.DELETE("/:id", h.Delete)
	}
}

func queryInt(c *gin.Context, key string) int {
	v := c.Query(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
