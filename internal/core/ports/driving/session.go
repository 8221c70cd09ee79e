package driving

import (
	"context"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
)

// SessionService manages the process-wide session lifecycle: exactly one
// live session (or none), expiry derived from the token itself, and at
// most one renewal in flight at any time.
type SessionService interface {
	// Current returns the in-memory session, lazily loaded from the
	// credential store on first access. Returns domain.ErrNotAuthenticated
	// when logged out.
	Current(ctx context.Context) (*domain.Session, error)

	// EnsureValid returns a non-expired session, renewing it first if
	// needed. Concurrent callers observe one shared renewal.
	EnsureValid(ctx context.Context) (*domain.Session, error)

	// Login authenticates and establishes the session.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Register creates a new account without logging in.
	Register(ctx context.Context, username, email, password string) error

	// Logout calls the remote logout best-effort, then unconditionally
	// clears local session state.
	Logout(ctx context.Context) error
}
