package driving

import (
	"context"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
)

// CatalogService answers filtered queries against the event catalog,
// serving cached results while they are fresh and delegating to the
// network otherwise.
type CatalogService interface {
	ListEvents(ctx context.Context, filter domain.Filter) ([]domain.Event, error)
	MapEvents(ctx context.Context, filter domain.Filter) ([]domain.MapEvent, error)
	Event(ctx context.Context, id int64) (*domain.Event, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Cities(ctx context.Context) ([]domain.City, error)
	SearchCities(ctx context.Context, prefix string) ([]domain.City, error)

	// ClearCache drops all cached query results.
	ClearCache(ctx context.Context) error
}
