package file

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CredentialStore = (*CredentialStore)(nil)

// scrypt parameters, interactive profile.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// keySalt is fixed: there is exactly one session file per secret, so a
// per-file salt buys nothing here.
var keySalt = []byte("eventdeck-session-v1")

// CredentialStore persists the session as an encrypted file. It is the
// fallback when no Redis is configured; the token is a credential, so it
// never touches disk in plaintext.
type CredentialStore struct {
	path string
	key  []byte
}

// NewCredentialStore derives the encryption key from secret and stores
// the session at path.
func NewCredentialStore(path, secret string) (*CredentialStore, error) {
	if secret == "" {
		return nil, fmt.Errorf("session file secret is required")
	}
	key, err := scrypt.Key([]byte(secret), keySalt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("deriving file key: %w", err)
	}
	return &CredentialStore{path: path, key: key}, nil
}

// Load reads and decrypts the session file, or returns
// domain.ErrNotFound when it does not exist.
func (s *CredentialStore) Load(ctx context.Context) (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("initialising cipher: %w", err)
	}
	if len(data) < aead.NonceSize() {
		return nil, fmt.Errorf("session file truncated: %w", domain.ErrNotFound)
	}

	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Wrong secret or corrupted file: treat as no session rather
		// than blocking startup.
		return nil, fmt.Errorf("decrypting session file: %w", domain.ErrNotFound)
	}

	var session domain.Session
	if err := json.Unmarshal(plaintext, &session); err != nil {
		return nil, fmt.Errorf("decoding session file: %w", err)
	}
	return &session, nil
}

// Save encrypts and atomically replaces the session file.
func (s *CredentialStore) Save(ctx context.Context, session *domain.Session) error {
	plaintext, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return fmt.Errorf("initialising cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}
	data := append(nonce, aead.Seal(nil, nonce, plaintext, nil)...)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	// Write-then-rename so a crash never leaves a half-written file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *CredentialStore) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
