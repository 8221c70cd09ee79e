package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CredentialStore = (*CredentialStore)(nil)

// sessionKey is the single fixed slot for the persisted session. The
// store holds at most one session per keyspace.
const sessionKey = "eventdeck:session"

// CredentialStore persists the session record in Redis so it survives
// process restarts.
type CredentialStore struct {
	client *redis.Client
}

// NewCredentialStore creates a Redis-backed CredentialStore.
func NewCredentialStore(client *redis.Client) *CredentialStore {
	return &CredentialStore{client: client}
}

// Load returns the stored session, or domain.ErrNotFound when the slot
// is empty.
func (s *CredentialStore) Load(ctx context.Context) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding stored session: %w", err)
	}
	return &session, nil
}

// Save replaces the stored session. No TTL: session validity is judged
// from the token, not from storage expiry.
func (s *CredentialStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Ping checks if the Redis backend is reachable.
func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
