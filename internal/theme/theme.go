// Package theme persists the dark-mode preference.
package theme

import "storefront/internal/storage"

// Manager holds the dark-mode flag, loaded once at construction.
type Manager struct {
	store storage.Store
	dark  bool
}

// NewManager loads the persisted preference; a missing or corrupt value
// defaults to light mode.
func NewManager(store storage.Store) *Manager {
	m := &Manager{store: store}
	m.store.Get(storage.KeyDarkMode, &m.dark)
	return m
}

// DarkMode reports the current preference.
func (m *Manager) DarkMode() bool {
	return m.dark
}

// Toggle flips and persists the preference.
func (m *Manager) Toggle() error {
	m.dark = !m.dark
	return m.store.Set(storage.KeyDarkMode, m.dark)
}
