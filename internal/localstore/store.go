// Package localstore persists the identity snapshot across restarts,
// the way the browser original kept it in localStorage. One key, one
// file, whole-file overwrite on save.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SaulT-G/skateshop/internal/domain"
)

const snapshotFile = "user.json"

var ErrNotFound = errors.New("no saved identity")

type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save overwrites the snapshot wholesale. Never merges.
func (s *Store) Save(identity *domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("write identity snapshot: %w", err)
	}
	return nil
}

func (s *Store) Load() (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read identity snapshot: %w", err)
	}
	var identity domain.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("unmarshal identity snapshot: %w", err)
	}
	return &identity, nil
}

// Clear deletes the snapshot. Clearing an absent snapshot is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove identity snapshot: %w", err)
	}
	return nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, snapshotFile)
}
