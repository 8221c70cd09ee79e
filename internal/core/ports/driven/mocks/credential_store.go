package mocks

import (
	"context"
	"sync"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure MockCredentialStore implements CredentialStore
var _ driven.CredentialStore = (*MockCredentialStore)(nil)

// MockCredentialStore is an in-memory CredentialStore for testing.
// Error fields let tests inject storage failures.
type MockCredentialStore struct {
	mu      sync.Mutex
	session *domain.Session

	LoadErr  error
	SaveErr  error
	ClearErr error

	LoadCalls  int
	SaveCalls  int
	ClearCalls int
}

// NewMockCredentialStore creates an empty MockCredentialStore
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{}
}

// Load returns the stored session or domain.ErrNotFound
func (m *MockCredentialStore) Load(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.session == nil {
		return nil, domain.ErrNotFound
	}
	copied := *m.session
	return &copied, nil
}

// Save replaces the stored session
func (m *MockCredentialStore) Save(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	copied := *session
	m.session = &copied
	return nil
}

// Clear empties the slot
func (m *MockCredentialStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.session = nil
	return nil
}

// Stored returns the current slot content without counting as a Load
func (m *MockCredentialStore) Stored() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}
