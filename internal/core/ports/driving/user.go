package driving

import (
	"context"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
)

// UserService covers the authenticated per-user actions: favourites,
// reactions, profile and recommendations. Mutations deliberately do not
// invalidate cached list results; those stay stale until their TTL runs
// out.
type UserService interface {
	Profile(ctx context.Context) (*domain.UserProfile, error)
	UpdatePreferences(ctx context.Context, categories []string) (*domain.UserInformation, error)
	DeleteAccount(ctx context.Context) error

	ToggleFavourite(ctx context.Context, eventID int64) error
	IsFavourite(ctx context.Context, eventID int64) (bool, error)
	FavouriteEvents(ctx context.Context) ([]domain.FavouriteEvent, error)

	React(ctx context.Context, eventID int64, reaction string) (bool, error)
	ReactedEvents(ctx context.Context) ([]domain.ReactedEvent, error)

	Recommendations(ctx context.Context, page, size int) ([]domain.Event, error)
}
