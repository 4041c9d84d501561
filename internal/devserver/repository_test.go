package devserver

import (
	"context"
	"testing"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func seedProducts(t *testing.T, repo ProductRepository, products ...model.Product) {
	t.Helper()
	for i := range products {
		require.NoError(t, repo.Create(context.Background(), &products[i]))
	}
}

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	acc := &Account{
		User: model.User{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "Ada@Example.com",
			Role:      model.RoleUser,
		},
		PasswordHash: "hash",
	}
	assert.NoError(t, repo.Create(ctx, acc))
	assert.Equal(t, 1, acc.ID)

	// Lookup is case-insensitive on email.
	found, err := repo.FindByEmail(ctx, "ada@example.com")
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, acc.ID, found.ID)

	found, err = repo.FindByID(ctx, acc.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ada", found.FirstName)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.FindByID(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryProductRepository_ListPagination(t *testing.T) {
	repo := NewMemoryProductRepository()
	seedProducts(t, repo,
		model.Product{Name: "A", Price: decimal.NewFromInt(1)},
		model.Product{Name: "B", Price: decimal.NewFromInt(2)},
		model.Product{Name: "C", Price: decimal.NewFromInt(3)},
	)

	items, total, err := repo.List(context.Background(), ProductFilters{Page: 1, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)

	items, total, err = repo.List(context.Background(), ProductFilters{Page: 2, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 1)
	assert.Equal(t, "C", items[0].Name)

	// A page past the end is empty but still reports the full total.
	items, total, err = repo.List(context.Background(), ProductFilters{Page: 5, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, items)
}

func TestMemoryProductRepository_ListFilters(t *testing.T) {
	repo := NewMemoryProductRepository()
	seedProducts(t, repo,
		model.Product{Name: "Office Desk", Description: "wide", Price: decimal.NewFromInt(120), CategoryName: strptr("desks")},
		model.Product{Name: "Office Chair", Description: "soft", Price: decimal.NewFromInt(80), CategoryName: strptr("chairs")},
		model.Product{Name: "Lamp", Description: "a desk lamp", Price: decimal.NewFromInt(15)},
	)
	ctx := context.Background()

	_, total, err := repo.List(ctx, ProductFilters{Category: "DESKS"})
	assert.NoError(t, err)
	assert.Equal(t, 1, total)

	// Search matches name or description, case-insensitively.
	_, total, err = repo.List(ctx, ProductFilters{Search: "desk"})
	assert.NoError(t, err)
	assert.Equal(t, 2, total)

	min := decimal.NewFromInt(50)
	max := decimal.NewFromInt(100)
	items, total, err := repo.List(ctx, ProductFilters{MinPrice: &min, MaxPrice: &max})
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Office Chair", items[0].Name)
}

func TestMemoryProductRepository_Categories(t *testing.T) {
	repo := NewMemoryProductRepository()
	seedProducts(t, repo,
		model.Product{Name: "A", CategoryName: strptr("desks")},
		model.Product{Name: "B", CategoryName: strptr("desks")},
		model.Product{Name: "C", CategoryName: strptr("chairs")},
		model.Product{Name: "D"},
	)

	categories, err := repo.Categories(context.Background())
	assert.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, model.Category{ID: 1, Name: "chairs"}, categories[0])
	assert.Equal(t, model.Category{ID: 2, Name: "desks"}, categories[1])
}

func TestMemoryProductRepository_UpdateDelete(t *testing.T) {
	repo := NewMemoryProductRepository()
	p := model.Product{Name: "Desk", Price: decimal.NewFromInt(10)}
	require.NoError(t, repo.Create(context.Background(), &p))
	ctx := context.Background()

	p.Name = "Standing Desk"
	assert.NoError(t, repo.Update(ctx, &p))
	reloaded, err := repo.FindByID(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Standing Desk", reloaded.Name)

	ghost := model.Product{ID: 999, Name: "Ghost"}
	assert.ErrorIs(t, repo.Update(ctx, &ghost), ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)

	missing, err := repo.FindByID(ctx, p.ID)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
