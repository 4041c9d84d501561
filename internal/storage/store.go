// Package storage persists small pieces of client state (session, cart,
// theme) across process restarts, one JSON value per key.
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Well-known keys.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyDarkMode = "darkMode"
	KeyCart     = "cart"
)

// Store defines operations on the persisted local state. Values are parsed
// opportunistically: a value that fails to decode is treated as absent and
// the key is cleared as a side effect.
type Store interface {
	Get(key string, out any) bool
	Set(key string, value any) error
	Delete(key string)
}

type fileStore struct {
	dir string
}

// NewFileStore creates a Store backed by one file per key under dir.
func NewFileStore(dir string) Store {
	return &fileStore{dir: dir}
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get loads and decodes the value stored under key into out. It returns
// false when the key is absent or the stored value cannot be decoded; in the
// latter case the corrupt value is removed.
func (s *fileStore) Get(key string, out any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read persisted %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("Discarding corrupt persisted %s: %v", key, err)
		s.Delete(key)
		return false
	}
	return true
}

// Set encodes value and writes it under key. The write goes through a
// temporary file and a rename so readers never observe a partial value.
func (s *fileStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Missing keys are not an error.
func (s *fileStore) Delete(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove persisted %s: %v", key, err)
	}
}
