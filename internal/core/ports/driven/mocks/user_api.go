package mocks

import (
	"context"
	"sync"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure MockUserAPI implements UserAPI
var _ driven.UserAPI = (*MockUserAPI)(nil)

// MockUserAPI is an in-memory UserAPI tracking favourites and reactions.
type MockUserAPI struct {
	mu         sync.Mutex
	favourites map[int64]bool
	reactions  map[int64]string

	ProfileErr error
}

// NewMockUserAPI creates an empty MockUserAPI
func NewMockUserAPI() *MockUserAPI {
	return &MockUserAPI{
		favourites: make(map[int64]bool),
		reactions:  make(map[int64]string),
	}
}

func (m *MockUserAPI) Profile(ctx context.Context) (*domain.UserProfile, error) {
	if m.ProfileErr != nil {
		return nil, m.ProfileErr
	}
	return &domain.UserProfile{Username: "alice", Email: "alice@example.com"}, nil
}

func (m *MockUserAPI) UpdatePreferences(ctx context.Context, categories []string) (*domain.UserInformation, error) {
	return &domain.UserInformation{FavouriteCategories: categories}, nil
}

func (m *MockUserAPI) DeleteAccount(ctx context.Context) error {
	return nil
}

func (m *MockUserAPI) ToggleFavourite(ctx context.Context, eventID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favourites[eventID] = !m.favourites[eventID]
	return nil
}

func (m *MockUserAPI) IsFavourite(ctx context.Context, eventID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.favourites[eventID], nil
}

func (m *MockUserAPI) FavouriteEvents(ctx context.Context) ([]domain.FavouriteEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FavouriteEvent
	for id, fav := range m.favourites {
		if fav {
			out = append(out, domain.FavouriteEvent{ID: id})
		}
	}
	return out, nil
}

func (m *MockUserAPI) React(ctx context.Context, eventID int64, reaction string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, existed := m.reactions[eventID]
	m.reactions[eventID] = reaction
	return !existed, nil
}

func (m *MockUserAPI) ReactedEvents(ctx context.Context) ([]domain.ReactedEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ReactedEvent
	for id, r := range m.reactions {
		out = append(out, domain.ReactedEvent{EventID: id, ReactionType: r})
	}
	return out, nil
}

func (m *MockUserAPI) Recommendations(ctx context.Context, page, size int) ([]domain.Event, error) {
	return nil, nil
}
