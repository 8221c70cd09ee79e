package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAuthenticated indicates no session is present.
	// Public endpoints treat this as "send the request unauthenticated".
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenExpired indicates the access token expired; detected locally
	// before dispatch and resolved by renewal, never surfaced to callers
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the access token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrRenewalFailed indicates the renewal endpoint rejected the refresh
	// credential or was unreachable; terminal for the session
	ErrRenewalFailed = errors.New("session renewal failed")

	// ErrUnauthorized indicates the server rejected the request after the
	// one-retry budget was exhausted; terminal for the session
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServerError indicates a non-auth server-side failure; surfaced
	// verbatim to the caller and never retried by the client
	ErrServerError = errors.New("server error")
)
