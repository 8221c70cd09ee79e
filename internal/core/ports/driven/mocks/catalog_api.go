package mocks

import (
	"context"
	"sync/atomic"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure MockCatalogAPI implements CatalogAPI
var _ driven.CatalogAPI = (*MockCatalogAPI)(nil)

// MockCatalogAPI is a scriptable CatalogAPI for testing the cache layer.
type MockCatalogAPI struct {
	ListEventsFunc   func(ctx context.Context, filter domain.Filter) ([]domain.Event, error)
	MapEventsFunc    func(ctx context.Context, filter domain.Filter) ([]domain.MapEvent, error)
	EventFunc        func(ctx context.Context, id int64) (*domain.Event, error)
	CategoriesFunc   func(ctx context.Context) ([]domain.Category, error)
	CitiesFunc       func(ctx context.Context) ([]domain.City, error)
	SearchCitiesFunc func(ctx context.Context, prefix string) ([]domain.City, error)

	listCalls       atomic.Int64
	mapCalls        atomic.Int64
	categoriesCalls atomic.Int64
	citiesCalls     atomic.Int64
}

// NewMockCatalogAPI creates a MockCatalogAPI returning empty results
func NewMockCatalogAPI() *MockCatalogAPI {
	return &MockCatalogAPI{}
}

func (m *MockCatalogAPI) ListEvents(ctx context.Context, filter domain.Filter) ([]domain.Event, error) {
	m.listCalls.Add(1)
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockCatalogAPI) MapEvents(ctx context.Context, filter domain.Filter) ([]domain.MapEvent, error) {
	m.mapCalls.Add(1)
	if m.MapEventsFunc != nil {
		return m.MapEventsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockCatalogAPI) Event(ctx context.Context, id int64) (*domain.Event, error) {
	if m.EventFunc != nil {
		return m.EventFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockCatalogAPI) EventCount(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *MockCatalogAPI) ReactionCount(ctx context.Context, eventID int64, reactionType string) (int64, error) {
	return 0, nil
}

func (m *MockCatalogAPI) Categories(ctx context.Context) ([]domain.Category, error) {
	m.categoriesCalls.Add(1)
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalogAPI) Cities(ctx context.Context) ([]domain.City, error) {
	m.citiesCalls.Add(1)
	if m.CitiesFunc != nil {
		return m.CitiesFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalogAPI) SearchCities(ctx context.Context, prefix string) ([]domain.City, error) {
	if m.SearchCitiesFunc != nil {
		return m.SearchCitiesFunc(ctx, prefix)
	}
	return nil, nil
}

// ListCalls reports how many times ListEvents ran
func (m *MockCatalogAPI) ListCalls() int64 { return m.listCalls.Load() }

// MapCalls reports how many times MapEvents ran
func (m *MockCatalogAPI) MapCalls() int64 { return m.mapCalls.Load() }

// CategoriesCalls reports how many times Categories ran
func (m *MockCatalogAPI) CategoriesCalls() int64 { return m.categoriesCalls.Load() }

// CitiesCalls reports how many times Cities ran
func (m *MockCatalogAPI) CitiesCalls() int64 { return m.citiesCalls.Load() }
