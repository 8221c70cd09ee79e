package rest

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure CatalogClient implements CatalogAPI
var _ driven.CatalogAPI = (*CatalogClient)(nil)

// CatalogClient is the public query surface over the request pipeline.
type CatalogClient struct {
	client *Client
}

// NewCatalogClient creates a catalog transport over the pipeline.
func NewCatalogClient(client *Client) *CatalogClient {
	return &CatalogClient{client: client}
}

// filterQuery renders a filter as the server's query parameters. Empty
// fields are omitted; categories repeat the parameter.
func filterQuery(filter domain.Filter, paged bool) url.Values {
	query := url.Values{}
	if paged {
		query.Set("page", strconv.Itoa(filter.Page))
		query.Set("size", strconv.Itoa(filter.PageSize))
	}
	if filter.CityName != "" {
		query.Set("cityName", filter.CityName)
	}
	for _, category := range filter.Categories {
		query.Add("category", category)
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		query.Set("searchTerm", term)
	}
	return query
}

func (c *CatalogClient) ListEvents(ctx context.Context, filter domain.Filter) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.client.getJSON(ctx, "/events/list", filterQuery(filter, true), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *CatalogClient) MapEvents(ctx context.Context, filter domain.Filter) ([]domain.MapEvent, error) {
	var events []domain.MapEvent
	if err := c.client.getJSON(ctx, "/events/map", filterQuery(filter, false), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *CatalogClient) Event(ctx context.Context, id int64) (*domain.Event, error) {
	var event domain.Event
	if err := c.client.getJSON(ctx, "/events/"+strconv.FormatInt(id, 10), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *CatalogClient) EventCount(ctx context.Context) (int64, error) {
	var count int64
	if err := c.client.getJSON(ctx, "/events/count", nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *CatalogClient) ReactionCount(ctx context.Context, eventID int64, reactionType string) (int64, error) {
	query := url.Values{}
	query.Set("reactionType", reactionType)

	var count int64
	path := "/events/" + strconv.FormatInt(eventID, 10) + "/count"
	if err := c.client.getJSON(ctx, path, query, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *CatalogClient) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.client.getJSON(ctx, "/categories/all", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *CatalogClient) Cities(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	if err := c.client.getJSON(ctx, "/cities/all", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *CatalogClient) SearchCities(ctx context.Context, prefix string) ([]domain.City, error) {
	query := url.Values{}
	query.Set("cityName", prefix)

	var cities []domain.City
	if err := c.client.getJSON(ctx, "/cities", query, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}
