// Package cart keeps the locally persisted shopping cart. It is independent
// of the session and never synced to the backend.
package cart

import (
	"storefront/internal/model"
	"storefront/internal/storage"
)

// Service reads and writes the persisted cart list.
type Service struct {
	store storage.Store
}

// NewService creates a cart Service over the persisted store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Add puts a product in the cart. A product already present has its
// quantity incremented; otherwise it is appended with quantity 1.
func (s *Service) Add(p model.Product) error {
	items := s.Items()
	for i := range items {
		if items[i].ID == p.ID {
			items[i].Quantity++
			return s.store.Set(storage.KeyCart, items)
		}
	}
	items = append(items, model.CartItem{Product: p, Quantity: 1})
	return s.store.Set(storage.KeyCart, items)
}

// Items returns the persisted cart. A missing or corrupt cart reads as
// empty.
func (s *Service) Items() []model.CartItem {
	var items []model.CartItem
	s.store.Get(storage.KeyCart, &items)
	return items
}
