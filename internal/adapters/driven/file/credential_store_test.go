package file

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
)

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.bin")
	store, err := NewCredentialStore(path, "test-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store
}

func TestCredentialStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	session := &domain.Session{
		UserID:    7,
		Username:  "alice",
		Roles:     []string{"ROLE_USER"},
		Token:     "jwt-token",
		ExpiresAt: time.Now().Add(1 * time.Hour).Truncate(time.Second),
	}
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Username != "alice" || loaded.Token != "jwt-token" {
		t.Errorf("unexpected session: %+v", loaded)
	}
}

func TestCredentialStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCredentialStore_FileIsEncrypted(t *testing.T) {
	store := newTestStore(t)

	session := &domain.Session{Username: "alice", Token: "very-secret-token"}
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Contains(raw, []byte("very-secret-token")) {
		t.Error("expected the token encrypted at rest")
	}
	if bytes.Contains(raw, []byte("alice")) {
		t.Error("expected the identity encrypted at rest")
	}
}

func TestCredentialStore_WrongSecretReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	store, err := NewCredentialStore(path, "right-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = store.Save(context.Background(), &domain.Session{Username: "alice", Token: "jwt"})

	other, err := NewCredentialStore(path, "wrong-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := other.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected a wrong secret to read as no session, got %v", err)
	}
}

func TestCredentialStore_Clear(t *testing.T) {
	store := newTestStore(t)

	_ = store.Save(context.Background(), &domain.Session{Username: "alice"})
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after clear, got %v", err)
	}

	// Clearing again is fine.
	if err := store.Clear(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewCredentialStore_RequiresSecret(t *testing.T) {
	if _, err := NewCredentialStore("/tmp/session.bin", ""); err == nil {
		t.Error("expected an error for an empty secret")
	}
}
