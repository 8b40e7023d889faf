// Package memory is the process-local ClientStorage driver. Entries do not
// survive a restart; it backs tests and single-run development sessions.
package memory

import (
	"context"
	"sync"

	"github.com/99minutos/storefront-console/internal/core/ports"
)

type Storage struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ ports.ClientStorage = (*Storage)(nil)

func NewStorage() *Storage {
	return &Storage{entries: make(map[string]string)}
}

func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *Storage) SetMany(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		s.entries[k] = v
	}
	return nil
}

func (s *Storage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

func (s *Storage) Ping(context.Context) error { return nil }
