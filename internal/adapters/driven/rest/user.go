package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure UserClient implements UserAPI
var _ driven.UserAPI = (*UserClient)(nil)

// UserClient is the authenticated per-user surface over the request
// pipeline. Every call here requires a bearer token; the pipeline
// attaches and renews it.
type UserClient struct {
	client *Client
}

// NewUserClient creates a user transport over the pipeline.
func NewUserClient(client *Client) *UserClient {
	return &UserClient{client: client}
}

type preferencesRequest struct {
	FavouriteCategories []string `json:"favouriteCategories"`
}

func (u *UserClient) Profile(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := u.client.getJSON(ctx, "/users/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (u *UserClient) UpdatePreferences(ctx context.Context, categories []string) (*domain.UserInformation, error) {
	var info domain.UserInformation
	body := preferencesRequest{FavouriteCategories: categories}
	if err := u.client.postJSON(ctx, "/users/update-preferences", nil, body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (u *UserClient) DeleteAccount(ctx context.Context) error {
	return u.client.postJSON(ctx, "/users/delete", nil, nil, nil)
}

func (u *UserClient) ToggleFavourite(ctx context.Context, eventID int64) error {
	path := "/users/handle-favourite-event/" + strconv.FormatInt(eventID, 10)
	return u.client.postJSON(ctx, path, nil, nil, nil)
}

func (u *UserClient) IsFavourite(ctx context.Context, eventID int64) (bool, error) {
	var favourite bool
	path := "/users/is-favourite-event/" + strconv.FormatInt(eventID, 10)
	if err := u.client.getJSON(ctx, path, nil, &favourite); err != nil {
		return false, err
	}
	return favourite, nil
}

func (u *UserClient) FavouriteEvents(ctx context.Context) ([]domain.FavouriteEvent, error) {
	var events []domain.FavouriteEvent
	if err := u.client.getJSON(ctx, "/users/favourite-events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (u *UserClient) React(ctx context.Context, eventID int64, reaction string) (bool, error) {
	query := url.Values{}
	query.Set("reaction", reaction)

	var added bool
	path := "/users/event/" + strconv.FormatInt(eventID, 10) + "/reaction"
	if err := u.client.postJSON(ctx, path, query, nil, &added); err != nil {
		return false, err
	}
	return added, nil
}

func (u *UserClient) ReactedEvents(ctx context.Context) ([]domain.ReactedEvent, error) {
	var events []domain.ReactedEvent
	if err := u.client.getJSON(ctx, "/users/events/reactions", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (u *UserClient) Recommendations(ctx context.Context, page, size int) ([]domain.Event, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var events []domain.Event
	if err := u.client.getJSON(ctx, "/users/event/recommendations", query, &events); err != nil {
		return nil, err
	}
	return events, nil
}
