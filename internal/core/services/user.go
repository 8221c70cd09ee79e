package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// Reaction types accepted by the catalog service.
var validReactions = map[string]bool{
	"LIKE":       true,
	"INTERESTED": true,
	"DISLIKE":    true,
}

// userService executes authenticated per-user actions. It is a thin
// layer: the interesting behaviour (bearer attach, renew-and-retry)
// lives in the request pipeline underneath the UserAPI.
type userService struct {
	api    driven.UserAPI
	logger *slog.Logger
}

// NewUserService creates a user service over the given API transport.
func NewUserService(api driven.UserAPI, logger *slog.Logger) *userService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{api: api, logger: logger}
}

func (s *userService) Profile(ctx context.Context) (*domain.UserProfile, error) {
	return s.api.Profile(ctx)
}

func (s *userService) UpdatePreferences(ctx context.Context, categories []string) (*domain.UserInformation, error) {
	if len(categories) > domain.MaxFilterCategories {
		return nil, fmt.Errorf("%w: at most %d favourite categories", domain.ErrInvalidInput, domain.MaxFilterCategories)
	}
	return s.api.UpdatePreferences(ctx, categories)
}

func (s *userService) DeleteAccount(ctx context.Context) error {
	if err := s.api.DeleteAccount(ctx); err != nil {
		return err
	}
	s.logger.Info("account deleted")
	return nil
}

func (s *userService) ToggleFavourite(ctx context.Context, eventID int64) error {
	return s.api.ToggleFavourite(ctx, eventID)
}

func (s *userService) IsFavourite(ctx context.Context, eventID int64) (bool, error) {
	return s.api.IsFavourite(ctx, eventID)
}

func (s *userService) FavouriteEvents(ctx context.Context) ([]domain.FavouriteEvent, error) {
	return s.api.FavouriteEvents(ctx)
}

func (s *userService) React(ctx context.Context, eventID int64, reaction string) (bool, error) {
	if !validReactions[reaction] {
		return false, fmt.Errorf("%w: unknown reaction %q", domain.ErrInvalidInput, reaction)
	}
	return s.api.React(ctx, eventID, reaction)
}

func (s *userService) ReactedEvents(ctx context.Context) ([]domain.ReactedEvent, error) {
	return s.api.ReactedEvents(ctx)
}

func (s *userService) Recommendations(ctx context.Context, page, size int) ([]domain.Event, error) {
	if page < 0 || size < 0 {
		return nil, fmt.Errorf("%w: negative pagination", domain.ErrInvalidInput)
	}
	return s.api.Recommendations(ctx, page, size)
}
