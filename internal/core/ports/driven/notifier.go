package driven

// Notifier surfaces session-level events to the user interface.
// The session manager guarantees at most one SessionExpired call per
// failure episode, however many concurrent requests hit the same
// failed renewal.
type Notifier interface {
	// SessionExpired tells the user their session ended and they need
	// to log in again.
	SessionExpired(reason string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) SessionExpired(string) {}
