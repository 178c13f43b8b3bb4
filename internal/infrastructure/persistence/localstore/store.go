package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"giftshop/pkg/logger"
)

// Store is a file-backed key-value store: one JSON document per key
// under a data directory. It is the durable, session-scoped storage
// the cart and order history live in.
type Store struct {
	dir string
	log logger.Logger
	mu  sync.Mutex
}

func New(dir string, log logger.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Load reads the raw document for a key. A missing or unreadable key
// yields (nil, false); it never returns an error to the caller.
func (s *Store) Load(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("store read failed", logger.String("key", key), logger.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Save writes the document for a key atomically (write to a temp file,
// then rename).
func (s *Store) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. A missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
