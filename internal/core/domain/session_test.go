package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signTestToken mints an HS256 token with the given expiry.
// The signing key is irrelevant: the client decodes without verification.
func signTestToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(1 * time.Hour).Truncate(time.Second)
	token := signTestToken(t, exp)

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("expected expiry %v, got %v", exp, got)
	}
}

func TestTokenExpiry_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "two segments", token: "aaaa.bbbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TokenExpiry(tt.token); err == nil {
				t.Error("expected error for malformed token")
			}
		})
	}
}

func TestTokenExpiry_MissingClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	_, err = TokenExpiry(signed)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestSession_IsExpired(t *testing.T) {
	tests := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{name: "valid for an hour", exp: time.Now().Add(1 * time.Hour), want: false},
		{name: "expired an hour ago", exp: time.Now().Add(-1 * time.Hour), want: true},
		{name: "within the leeway window", exp: time.Now().Add(2 * time.Second), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{Token: signTestToken(t, tt.exp)}
			if got := s.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_IsExpired_FailsClosed(t *testing.T) {
	// A malformed token must count as expired, never as valid.
	s := &Session{Token: "corrupted"}
	if !s.IsExpired() {
		t.Error("expected malformed token to be treated as expired")
	}
}

func TestSession_IsExpired_IgnoresStoredExpiry(t *testing.T) {
	// The stored ExpiresAt field must never override the token's own claim.
	s := &Session{
		Token:     signTestToken(t, time.Now().Add(-1*time.Hour)),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if !s.IsExpired() {
		t.Error("expected expiry judgment to come from the token, not ExpiresAt")
	}
}

func TestSession_HasRole(t *testing.T) {
	s := &Session{Roles: []string{"ROLE_USER", "ROLE_ADMIN"}}

	if !s.HasRole("ROLE_ADMIN") {
		t.Error("expected HasRole to find ROLE_ADMIN")
	}
	if s.HasRole("ROLE_MODERATOR") {
		t.Error("did not expect ROLE_MODERATOR")
	}
}
