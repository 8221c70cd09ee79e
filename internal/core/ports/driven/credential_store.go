package driven

import (
	"context"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
)

// CredentialStore persists the current session record across process
// restarts. It is a dumb, ownership-exclusive slot under a fixed storage
// key: serialization happens here and nowhere else, and no validation
// logic lives behind it.
type CredentialStore interface {
	// Load returns the stored session, or domain.ErrNotFound when the
	// slot is empty.
	Load(ctx context.Context) (*domain.Session, error)

	// Save replaces the stored session.
	Save(ctx context.Context, session *domain.Session) error

	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}
