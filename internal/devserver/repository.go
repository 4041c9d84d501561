// Package devserver is a local stand-in for the production e-commerce API.
// It reproduces the backend contract, including the inconsistent list
// envelopes the real service ships, so the client and its normalizer can be
// exercised end to end without network access.
package devserver

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by mutations on records that do not exist.
var ErrNotFound = errors.New("record not found")

// Account is a stored user plus credentials. The hash never leaves the
// fixture.
type Account struct {
	model.User
	PasswordHash string
}

// ProductFilters are the query parameters the list endpoints accept.
type ProductFilters struct {
	Page     int
	Limit    int
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// UserRepository defines operations for account data
type UserRepository interface {
	Create(ctx context.Context, acc *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id int) (*Account, error)
}

// ProductRepository defines operations for catalog data
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id int) (*model.Product, error)
	List(ctx context.Context, filters ProductFilters) ([]model.Product, int, error)
	Categories(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int) error
}

type memoryUserRepository struct {
	mu     sync.Mutex
	users  map[int]*Account
	nextID int
}

// NewMemoryUserRepository creates an in-memory UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[int]*Account), nextID: 1}
}

func (r *memoryUserRepository) Create(_ context.Context, acc *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc.ID = r.nextID
	r.nextID++
	stored := *acc
	r.users[acc.ID] = &stored
	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, acc := range r.users {
		if strings.EqualFold(acc.Email, email) {
			found := *acc
			return &found, nil
		}
	}
	return nil, nil // Not found is not an error for this method's contract
}

func (r *memoryUserRepository) FindByID(_ context.Context, id int) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	found := *acc
	return &found, nil
}

type memoryProductRepository struct {
	mu       sync.Mutex
	products map[int]*model.Product
	nextID   int
}

// NewMemoryProductRepository creates an in-memory ProductRepository.
func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{products: make(map[int]*model.Product), nextID: 1}
}

func (r *memoryProductRepository) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *memoryProductRepository) FindByID(_ context.Context, id int) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	found := *p
	return &found, nil
}

func (r *memoryProductRepository) List(_ context.Context, filters ProductFilters) ([]model.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if !matches(p, filters) {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	page, limit := filters.Page, filters.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	start := (page - 1) * limit
	if start >= total {
		return []model.Product{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memoryProductRepository) Categories(_ context.Context) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	var categories []model.Category
	for _, p := range r.products {
		if p.CategoryName == nil || *p.CategoryName == "" || seen[*p.CategoryName] {
			continue
		}
		seen[*p.CategoryName] = true
		categories = append(categories, model.Category{ID: len(categories) + 1, Name: *p.CategoryName})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	for i := range categories {
		categories[i].ID = i + 1
	}
	return categories, nil
}

func (r *memoryProductRepository) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return ErrNotFound
	}
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *memoryProductRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func matches(p *model.Product, f ProductFilters) bool {
	if f.Category != "" {
		if p.CategoryName == nil || !strings.EqualFold(*p.CategoryName, f.Category) {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}
