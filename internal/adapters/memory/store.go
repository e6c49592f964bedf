// Package memory provides an in-process key-value store with an optional
// size quota, used for tests and ephemeral sessions.
package memory

import (
	"context"
	"fmt"
	"sync"

	"assessio/internal/ports"
)

var _ ports.KeyValueStore = (*Store)(nil)

// Store keeps values in a map. The quota counts key and value bytes.
type Store struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int64
	used  int64
}

// NewStore creates a store; a quota of zero or less means unlimited
func NewStore(quota int64) *Store {
	return &Store{data: make(map[string]string), quota: quota}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used + entrySize(key, value)
	if old, ok := s.data[key]; ok {
		used -= entrySize(key, old)
	}
	if s.quota > 0 && used > s.quota {
		return fmt.Errorf("set %s: %w (%d of %d bytes)", key, ports.ErrQuotaExceeded, used, s.quota)
	}
	s.data[key] = value
	s.used = used
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.data[key]; ok {
		s.used -= entrySize(key, old)
		delete(s.data, key)
	}
	return nil
}

func (s *Store) Close() error { return nil }

// Used returns the bytes counted against the quota
func (s *Store) Used() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
