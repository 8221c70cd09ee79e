package memory

import (
	"context"
	"sync"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore is the in-process cache used when no Redis is configured.
// Entries do not survive restarts, which matches the original client's
// per-process cache behaviour.
type CacheStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.CacheEntry
}

// NewCacheStore creates an empty in-memory CacheStore.
func NewCacheStore() *CacheStore {
	return &CacheStore{entries: make(map[string]*domain.CacheEntry)}
}

// Get returns the entry for key, or domain.ErrNotFound on a miss.
func (s *CacheStore) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

// Put stores or replaces the entry under its key.
func (s *CacheStore) Put(ctx context.Context, entry *domain.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	s.entries[entry.Key] = &copied
	return nil
}

// Clear drops every cached entry.
func (s *CacheStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*domain.CacheEntry)
	return nil
}
