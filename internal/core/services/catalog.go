package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driving"
)

// Ensure catalogService implements CatalogService
var _ driving.CatalogService = (*catalogService)(nil)

// Default freshness windows per result kind.
const (
	DefaultEventsTTL     = 30 * time.Minute
	DefaultCitiesTTL     = 30 * time.Minute
	DefaultCategoriesTTL = 24 * time.Hour
)

// Cache keys for the unfiltered reference lists.
const (
	citiesCacheKey     = "cities-all"
	categoriesCacheKey = "categories-all"
)

// catalogService fronts the catalog API with a read-through cache.
// Entries are evicted lazily: a stale hit triggers a refetch that
// overwrites the entry, and a failed refetch leaves the entry untouched.
type catalogService struct {
	api    driven.CatalogAPI
	store  driven.CacheStore
	logger *slog.Logger

	eventsTTL     time.Duration
	citiesTTL     time.Duration
	categoriesTTL time.Duration

	// fetches collapses concurrent misses on the same key into one
	// upstream call.
	fetches singleflight.Group

	now func() time.Time
}

// CatalogServiceConfig holds dependencies for the catalog service.
// Zero TTLs fall back to the defaults.
type CatalogServiceConfig struct {
	API    driven.CatalogAPI
	Store  driven.CacheStore
	Logger *slog.Logger

	EventsTTL     time.Duration
	CitiesTTL     time.Duration
	CategoriesTTL time.Duration
}

// NewCatalogService creates a catalog service with a read-through cache.
func NewCatalogService(cfg CatalogServiceConfig) *catalogService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	svc := &catalogService{
		api:           cfg.API,
		store:         cfg.Store,
		logger:        logger,
		eventsTTL:     cfg.EventsTTL,
		citiesTTL:     cfg.CitiesTTL,
		categoriesTTL: cfg.CategoriesTTL,
		now:           time.Now,
	}
	if svc.eventsTTL <= 0 {
		svc.eventsTTL = DefaultEventsTTL
	}
	if svc.citiesTTL <= 0 {
		svc.citiesTTL = DefaultCitiesTTL
	}
	if svc.categoriesTTL <= 0 {
		svc.categoriesTTL = DefaultCategoriesTTL
	}
	return svc
}

// ListEvents returns the paged event list for filter, served from cache
// while fresh.
func (s *catalogService) ListEvents(ctx context.Context, filter domain.Filter) ([]domain.Event, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var events []domain.Event
	err := s.getOrFetch(ctx, filter.CacheKey(), s.eventsTTL, &events, func(ctx context.Context) (any, error) {
		return s.api.ListEvents(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MapEvents returns the unpaged map markers for filter, served from
// cache while fresh.
func (s *catalogService) MapEvents(ctx context.Context, filter domain.Filter) ([]domain.MapEvent, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var events []domain.MapEvent
	err := s.getOrFetch(ctx, filter.MapCacheKey(), s.eventsTTL, &events, func(ctx context.Context) (any, error) {
		return s.api.MapEvents(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Event fetches a single event by id. Detail views are not cached.
func (s *catalogService) Event(ctx context.Context, id int64) (*domain.Event, error) {
	return s.api.Event(ctx, id)
}

// Categories returns the category list, cached with the long TTL since
// the set rarely changes.
func (s *catalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := s.getOrFetch(ctx, categoriesCacheKey, s.categoriesTTL, &categories, func(ctx context.Context) (any, error) {
		return s.api.Categories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Cities returns the full city list, served from cache while fresh.
func (s *catalogService) Cities(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	err := s.getOrFetch(ctx, citiesCacheKey, s.citiesTTL, &cities, func(ctx context.Context) (any, error) {
		return s.api.Cities(ctx)
	})
	if err != nil {
		return nil, err
	}
	return cities, nil
}

// SearchCities queries cities by name prefix. Search is interactive and
// prefix spaces are unbounded, so results bypass the cache.
func (s *catalogService) SearchCities(ctx context.Context, prefix string) ([]domain.City, error) {
	return s.api.SearchCities(ctx, prefix)
}

// ClearCache drops every cached query result.
func (s *catalogService) ClearCache(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// getOrFetch is the read-through core: serve the cached entry while it
// is younger than ttl, otherwise fetch upstream, overwrite the entry and
// serve the fresh result. Concurrent misses on one key share a single
// fetch. A fetch failure writes nothing, so a later attempt may still
// succeed against the old entry's key.
func (s *catalogService) getOrFetch(ctx context.Context, key string, ttl time.Duration, dst any, fetch func(ctx context.Context) (any, error)) error {
	entry, err := s.store.Get(ctx, key)
	if err == nil && s.now().Sub(entry.FetchedAt) < ttl {
		return json.Unmarshal(entry.Payload, dst)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	}

	payload, err, _ := s.fetches.Do(key, func() (any, error) {
		// The result is shared by every coalesced caller, so the fetch
		// must not ride on the first caller's cancellation.
		ctx := context.WithoutCancel(ctx)

		result, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encoding cache entry %q: %w", key, err)
		}

		entry := &domain.CacheEntry{Key: key, Payload: raw, FetchedAt: s.now()}
		if err := s.store.Put(ctx, entry); err != nil {
			// Serve the fresh result even when the write-back fails.
			s.logger.Warn("cache write failed", "key", key, "error", err)
		}
		return json.RawMessage(raw), nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(payload.(json.RawMessage), dst)
}
