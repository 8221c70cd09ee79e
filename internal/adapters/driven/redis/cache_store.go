package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CacheStore = (*CacheStore)(nil)

const cachePrefix = "eventdeck:cache:"

// retention bounds how long an untouched entry lingers in Redis. It is
// deliberately longer than any freshness TTL: staleness is judged by
// the service, retention just stops dead keys from piling up.
const retention = 48 * time.Hour

// CacheStore keeps filtered-query entries in Redis so the cache
// survives restarts, mirroring the behaviour of a persisted store.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a Redis-backed CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Get returns the entry for key, or domain.ErrNotFound on a miss. The
// entry may be stale; the caller judges freshness.
func (s *CacheStore) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	data, err := s.client.Get(ctx, cachePrefix+key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache entry %q: %w", key, err)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry %q: %w", key, err)
	}
	return &entry, nil
}

// Put stores or replaces the entry under its key.
func (s *CacheStore) Put(ctx context.Context, entry *domain.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry %q: %w", entry.Key, err)
	}
	if err := s.client.Set(ctx, cachePrefix+entry.Key, data, retention).Err(); err != nil {
		return fmt.Errorf("writing cache entry %q: %w", entry.Key, err)
	}
	return nil
}

// Clear drops every cached entry in the namespace, leaving other keys
// (the persisted session) untouched.
func (s *CacheStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, cachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("deleting cache entry %q: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning cache keys: %w", err)
	}
	return nil
}
