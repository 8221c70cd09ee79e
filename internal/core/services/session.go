package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driving"
)

// Ensure sessionManager implements both sides of the session contract
var _ driving.SessionService = (*sessionManager)(nil)
var _ driven.TokenProvider = (*sessionManager)(nil)

// renewTimeout bounds a detached renewal round trip.
const renewTimeout = 30 * time.Second

// sessionManager owns the single process-wide session. All session state
// transitions go through here: the request pipeline only sees tokens via
// the TokenProvider interface.
type sessionManager struct {
	store    driven.CredentialStore
	api      driven.AuthAPI
	notifier driven.Notifier
	logger   *slog.Logger

	renewals singleflight.Group

	mu      sync.Mutex
	session *domain.Session
	loaded  bool
	// noticed marks that the user was already told about the current
	// failure episode. Reset on every successful login or renewal.
	noticed bool
}

// SessionManagerConfig holds dependencies for the session manager.
type SessionManagerConfig struct {
	Store    driven.CredentialStore
	API      driven.AuthAPI
	Notifier driven.Notifier
	Logger   *slog.Logger
}

// NewSessionManager creates a session manager backed by the given
// credential store and auth transport.
func NewSessionManager(cfg SessionManagerConfig) *sessionManager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = driven.NopNotifier{}
	}

	return &sessionManager{
		store:    cfg.Store,
		api:      cfg.API,
		notifier: notifier,
		logger:   logger,
	}
}

// Current returns the in-memory session, loading it from the credential
// store on first access.
func (s *sessionManager) Current(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked(ctx)
}

func (s *sessionManager) currentLocked(ctx context.Context) (*domain.Session, error) {
	if !s.loaded {
		session, err := s.store.Load(ctx)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.session = nil
		case err != nil:
			return nil, fmt.Errorf("loading session: %w", err)
		default:
			s.session = session
		}
		s.loaded = true
	}

	if s.session == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.session, nil
}

// EnsureValid returns a non-expired session, renewing first if needed.
func (s *sessionManager) EnsureValid(ctx context.Context) (*domain.Session, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsExpired() {
		return session, nil
	}

	s.logger.Debug("session expired, renewing", "user", session.Username)
	return s.renew(ctx)
}

// Login authenticates against the remote service and establishes the
// session. The expiry is derived from the returned token, never from the
// response body.
func (s *sessionManager) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	session, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	expiry, err := domain.TokenExpiry(session.Token)
	if err != nil {
		return nil, fmt.Errorf("login returned unusable token: %w", err)
	}
	session.ExpiresAt = expiry
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.session = session
	s.loaded = true
	s.noticed = false
	s.mu.Unlock()

	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}

	s.logger.Info("logged in", "user", session.Username)
	return session, nil
}

// Register creates a new account without logging in.
func (s *sessionManager) Register(ctx context.Context, username, email, password string) error {
	return s.api.Register(ctx, username, email, password)
}

// Logout tells the server to drop the renewal credential, best-effort,
// then unconditionally clears local state.
func (s *sessionManager) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed", "error", err)
	}

	s.mu.Lock()
	s.session = nil
	s.loaded = true
	s.noticed = false
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing stored session: %w", err)
	}

	s.logger.Info("logged out")
	return nil
}

// AccessToken implements driven.TokenProvider.
func (s *sessionManager) AccessToken(ctx context.Context) (string, error) {
	session, err := s.EnsureValid(ctx)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

// Refresh implements driven.TokenProvider. If a concurrent renewal
// already replaced stale, the newer token is returned without another
// round trip.
func (s *sessionManager) Refresh(ctx context.Context, stale string) (string, error) {
	s.mu.Lock()
	session, err := s.currentLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	if session.Token != stale {
		return session.Token, nil
	}

	renewed, err := s.renew(ctx)
	if err != nil {
		return "", err
	}
	return renewed.Token, nil
}

// Invalidate implements driven.TokenProvider. Called by the pipeline
// when a renewed token is still rejected; the forced logout runs at most
// once per episode.
func (s *sessionManager) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	had := s.session != nil
	s.session = nil
	s.loaded = true
	already := s.noticed
	s.noticed = true
	s.mu.Unlock()

	if !had && already {
		return nil
	}

	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed", "error", err)
	}
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear stored session", "error", err)
	}
	if !already {
		s.notifier.SessionExpired("access revoked by server")
	}

	s.logger.Info("session invalidated")
	return nil
}

// renew replaces the session token. Concurrent callers are collapsed
// into a single renewal and all receive the same result, so the shared
// round trip runs detached: one caller abandoning its request must not
// fail the renewal for the rest or burn the renewal credential.
func (s *sessionManager) renew(ctx context.Context) (*domain.Session, error) {
	v, err, _ := s.renewals.Do("renew", func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), renewTimeout)
		defer cancel()
		return s.doRenew(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Session), nil
}

func (s *sessionManager) doRenew(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	snapshot, err := s.currentLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	token, err := s.api.Refresh(ctx)
	if err != nil {
		s.logger.Warn("session renewal failed", "error", err)
		s.expire(ctx, "session expired, please log in again")
		return nil, fmt.Errorf("renewing session: %w", domain.ErrRenewalFailed)
	}

	expiry, err := domain.TokenExpiry(token)
	if err != nil {
		s.logger.Warn("renewal returned unusable token", "error", err)
		s.expire(ctx, "session expired, please log in again")
		return nil, fmt.Errorf("renewal returned unusable token: %w", domain.ErrRenewalFailed)
	}

	s.mu.Lock()
	next := *snapshot
	next.Token = token
	next.ExpiresAt = expiry
	s.session = &next
	s.noticed = false
	s.mu.Unlock()

	if err := s.store.Save(ctx, &next); err != nil {
		s.logger.Warn("failed to persist renewed session", "error", err)
	}

	s.logger.Debug("session renewed", "user", next.Username, "expires", expiry)
	return &next, nil
}

// expire drops the session everywhere and notifies the user once per
// failure episode.
func (s *sessionManager) expire(ctx context.Context, reason string) {
	s.mu.Lock()
	s.session = nil
	s.loaded = true
	already := s.noticed
	s.noticed = true
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear stored session", "error", err)
	}
	if !already {
		s.notifier.SessionExpired(reason)
	}
}
