package mocks

import (
	"context"
	"sync/atomic"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure MockTokenProvider implements TokenProvider
var _ driven.TokenProvider = (*MockTokenProvider)(nil)

// MockTokenProvider is a scriptable TokenProvider for pipeline tests.
type MockTokenProvider struct {
	AccessTokenFunc func(ctx context.Context) (string, error)
	RefreshFunc     func(ctx context.Context, stale string) (string, error)
	InvalidateFunc  func(ctx context.Context) error

	accessCalls     atomic.Int64
	refreshCalls    atomic.Int64
	invalidateCalls atomic.Int64
}

// NewMockTokenProvider creates a MockTokenProvider with no session
func NewMockTokenProvider() *MockTokenProvider {
	return &MockTokenProvider{}
}

func (m *MockTokenProvider) AccessToken(ctx context.Context) (string, error) {
	m.accessCalls.Add(1)
	if m.AccessTokenFunc != nil {
		return m.AccessTokenFunc(ctx)
	}
	return "", domain.ErrNotAuthenticated
}

func (m *MockTokenProvider) Refresh(ctx context.Context, stale string) (string, error) {
	m.refreshCalls.Add(1)
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, stale)
	}
	return "", domain.ErrRenewalFailed
}

func (m *MockTokenProvider) Invalidate(ctx context.Context) error {
	m.invalidateCalls.Add(1)
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx)
	}
	return nil
}

// AccessCalls reports how many times AccessToken ran
func (m *MockTokenProvider) AccessCalls() int64 { return m.accessCalls.Load() }

// RefreshCalls reports how many times Refresh ran
func (m *MockTokenProvider) RefreshCalls() int64 { return m.refreshCalls.Load() }

// InvalidateCalls reports how many times Invalidate ran
func (m *MockTokenProvider) InvalidateCalls() int64 { return m.invalidateCalls.Load() }
