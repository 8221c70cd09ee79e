package mocks

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure MockAuthAPI implements AuthAPI
var _ driven.AuthAPI = (*MockAuthAPI)(nil)

// MockAuthAPI is a scriptable AuthAPI for testing. Each func field, when
// set, overrides the default behaviour; call counters are safe to read
// from concurrent tests.
type MockAuthAPI struct {
	LoginFunc    func(ctx context.Context, username, password string) (*domain.Session, error)
	RefreshFunc  func(ctx context.Context) (string, error)
	RegisterFunc func(ctx context.Context, username, email, password string) error
	LogoutFunc   func(ctx context.Context) error

	// RefreshDelay makes Refresh block, widening race windows in
	// single-flight tests.
	RefreshDelay time.Duration

	loginCalls   atomic.Int64
	refreshCalls atomic.Int64
	logoutCalls  atomic.Int64
}

// NewMockAuthAPI creates a MockAuthAPI with default no-op behaviour
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{}
}

// Login runs LoginFunc or returns a minimal session
func (m *MockAuthAPI) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	m.loginCalls.Add(1)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return &domain.Session{Username: username, CreatedAt: time.Now()}, nil
}

// Refresh runs RefreshFunc after the configured delay
func (m *MockAuthAPI) Refresh(ctx context.Context) (string, error) {
	m.refreshCalls.Add(1)
	if m.RefreshDelay > 0 {
		select {
		case <-time.After(m.RefreshDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return "", domain.ErrRenewalFailed
}

// Register runs RegisterFunc or succeeds
func (m *MockAuthAPI) Register(ctx context.Context, username, email, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password)
	}
	return nil
}

// Logout runs LogoutFunc or succeeds
func (m *MockAuthAPI) Logout(ctx context.Context) error {
	m.logoutCalls.Add(1)
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

// LoginCalls reports how many times Login ran
func (m *MockAuthAPI) LoginCalls() int64 { return m.loginCalls.Load() }

// RefreshCalls reports how many times Refresh ran
func (m *MockAuthAPI) RefreshCalls() int64 { return m.refreshCalls.Load() }

// LogoutCalls reports how many times Logout ran
func (m *MockAuthAPI) LogoutCalls() int64 { return m.logoutCalls.Load() }
