package driven

import (
	"context"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
)

// CacheStore holds filtered-query results keyed by their derived cache
// key. Implementations only store and retrieve entries; freshness is
// judged by the caller against the owning TTL, and stale entries are
// overwritten on the next fetch rather than swept in the background.
type CacheStore interface {
	// Get returns the entry for key, or domain.ErrNotFound on a miss.
	// A returned entry may be stale; the caller decides.
	Get(ctx context.Context, key string) (*domain.CacheEntry, error)

	// Put stores or replaces the entry under entry.Key.
	Put(ctx context.Context, entry *domain.CacheEntry) error

	// Clear drops every cached entry.
	Clear(ctx context.Context) error
}
