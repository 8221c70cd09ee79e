package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway counts a token as expired slightly early, so a request
// never leaves the client with a token about to die in flight.
const expiryLeeway = 10 * time.Second

// Session is the authenticated identity plus its access token.
// The refresh credential is never part of the session: it lives in the
// transport's cookie jar and never reaches core code.
type Session struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenExpiry extracts the expiry claim from an access token without
// verifying the signature. Verification is the server's job; the client
// only needs the timestamp to schedule renewal.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("%w: missing expiry claim", ErrTokenInvalid)
	}
	return exp.Time, nil
}

// IsExpired reports whether the session's token is past (or within the
// leeway of) its expiry. The judgment always comes from the token
// itself: an undecodable token counts as expired.
func (s *Session) IsExpired() bool {
	if s == nil || s.Token == "" {
		return true
	}
	exp, err := TokenExpiry(s.Token)
	if err != nil {
		return true
	}
	return time.Now().After(exp.Add(-expiryLeeway))
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(role string) bool {
	return s != nil && slices.Contains(s.Roles, role)
}
