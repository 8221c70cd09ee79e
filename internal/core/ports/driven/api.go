package driven

import (
	"context"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
)

// AuthAPI is the authentication surface of the catalog service.
// Login and Refresh deal in the credential pair: the access token comes
// back in the response body while the renewal credential travels in a
// transport-managed cookie that never reaches core code.
type AuthAPI interface {
	// Login exchanges credentials for a session. The returned session
	// has no expiry set; the session manager derives it from the token.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Refresh obtains a new access token using the cookie-held renewal
	// credential. Returns only the token; the identity is unchanged.
	Refresh(ctx context.Context) (string, error)

	// Register creates a new account. Public endpoint.
	Register(ctx context.Context, username, email, password string) error

	// Logout clears the server-side renewal state. Best-effort.
	Logout(ctx context.Context) error
}

// CatalogAPI is the public query surface fronted by the filtered-query
// cache. All calls go through the request pipeline.
type CatalogAPI interface {
	ListEvents(ctx context.Context, filter domain.Filter) ([]domain.Event, error)
	MapEvents(ctx context.Context, filter domain.Filter) ([]domain.MapEvent, error)
	Event(ctx context.Context, id int64) (*domain.Event, error)
	EventCount(ctx context.Context) (int64, error)
	ReactionCount(ctx context.Context, eventID int64, reactionType string) (int64, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Cities(ctx context.Context) ([]domain.City, error)
	SearchCities(ctx context.Context, prefix string) ([]domain.City, error)
}

// UserAPI is the authenticated per-user surface. Every call requires a
// valid bearer credential attached by the request pipeline.
type UserAPI interface {
	Profile(ctx context.Context) (*domain.UserProfile, error)
	UpdatePreferences(ctx context.Context, categories []string) (*domain.UserInformation, error)
	DeleteAccount(ctx context.Context) error

	// ToggleFavourite flips the favourite state of an event.
	ToggleFavourite(ctx context.Context, eventID int64) error
	IsFavourite(ctx context.Context, eventID int64) (bool, error)
	FavouriteEvents(ctx context.Context) ([]domain.FavouriteEvent, error)

	// React records a reaction; reports whether it was added or replaced.
	React(ctx context.Context, eventID int64, reaction string) (bool, error)
	ReactedEvents(ctx context.Context) ([]domain.ReactedEvent, error)

	Recommendations(ctx context.Context, page, size int) ([]domain.Event, error)
}
