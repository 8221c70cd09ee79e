package driven

import "context"

// TokenProvider supplies valid access tokens for outgoing API calls.
// The session manager is the only implementation; the request pipeline
// consumes it and never touches session state directly.
type TokenProvider interface {
	// AccessToken returns a currently valid access token, renewing an
	// expired one first. Returns domain.ErrNotAuthenticated when no
	// session exists.
	AccessToken(ctx context.Context) (string, error)

	// Refresh forces a renewal after a server-side rejection of stale.
	// Concurrent callers share a single in-flight renewal, and if the
	// session already carries a token newer than stale that token is
	// returned without issuing another renewal.
	Refresh(ctx context.Context, stale string) (string, error)

	// Invalidate tears the session down after the retry budget is
	// exhausted. Logout side effects run at most once per episode.
	Invalidate(ctx context.Context) error
}
