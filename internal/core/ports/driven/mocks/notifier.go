package mocks

import (
	"sync"

	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure MockNotifier implements Notifier
var _ driven.Notifier = (*MockNotifier)(nil)

// MockNotifier records session-expired notices for assertions.
type MockNotifier struct {
	mu      sync.Mutex
	reasons []string
}

// NewMockNotifier creates an empty MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SessionExpired records the notice
func (m *MockNotifier) SessionExpired(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reasons = append(m.reasons, reason)
}

// Notices returns all recorded reasons
func (m *MockNotifier) Notices() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.reasons...)
}
