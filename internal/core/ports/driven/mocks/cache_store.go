package mocks

import (
	"context"
	"sync"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure MockCacheStore implements CacheStore
var _ driven.CacheStore = (*MockCacheStore)(nil)

// MockCacheStore is an in-memory CacheStore for testing.
type MockCacheStore struct {
	mu      sync.Mutex
	entries map[string]*domain.CacheEntry

	GetErr error
	PutErr error

	GetCalls int
	PutCalls int
}

// NewMockCacheStore creates an empty MockCacheStore
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{entries: make(map[string]*domain.CacheEntry)}
}

// Get returns the entry for key or domain.ErrNotFound
func (m *MockCacheStore) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	entry, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

// Put stores or replaces the entry
func (m *MockCacheStore) Put(ctx context.Context, entry *domain.CacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	if m.PutErr != nil {
		return m.PutErr
	}
	copied := *entry
	m.entries[entry.Key] = &copied
	return nil
}

// Clear drops all entries
func (m *MockCacheStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*domain.CacheEntry)
	return nil
}

// Len reports how many entries are stored
func (m *MockCacheStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
