package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

// Ensure AuthClient implements AuthAPI
var _ driven.AuthAPI = (*AuthClient)(nil)

// AuthClient talks to the authentication endpoints outside the bearer
// pipeline: these calls must not trigger renew-and-retry on themselves.
// The renewal credential arrives as a Set-Cookie on login and lives in
// the client's cookie jar; core code never sees it.
type AuthClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewAuthClient creates an auth transport with its own cookie jar.
func NewAuthClient(baseURL string, logger *slog.Logger) (*AuthClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: defaultTimeout,
		},
		logger: logger,
	}, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login exchanges credentials for a session. The response carries the
// access token in the body; the renewal cookie lands in the jar.
func (a *AuthClient) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	status, data, err := a.post(ctx, "/users/login", loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusUnauthorized:
		return nil, fmt.Errorf("login rejected: %w", domain.ErrNotAuthenticated)
	case status != http.StatusOK:
		return nil, fmt.Errorf("login: unexpected status %d: %w", status, domain.ErrServerError)
	}

	var body loginResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	a.logger.Debug("login succeeded", "user", body.Username)
	return &domain.Session{
		UserID:    body.ID,
		Username:  body.Username,
		Email:     body.Email,
		Roles:     body.Roles,
		Token:     body.AccessToken,
		TokenType: body.TokenType,
		CreatedAt: time.Now(),
	}, nil
}

// Refresh trades the cookie-held renewal credential for a new access
// token. A 401 means the credential itself is dead.
func (a *AuthClient) Refresh(ctx context.Context) (string, error) {
	status, data, err := a.post(ctx, "/users/refreshtoken", nil)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusUnauthorized:
		return "", fmt.Errorf("refresh credential rejected: %w", domain.ErrRenewalFailed)
	case status != http.StatusOK:
		return "", fmt.Errorf("refresh: unexpected status %d: %w", status, domain.ErrServerError)
	}

	var body refreshResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("refresh returned empty token: %w", domain.ErrRenewalFailed)
	}
	return body.AccessToken, nil
}

// Register creates a new account.
func (a *AuthClient) Register(ctx context.Context, username, email, password string) error {
	status, _, err := a.post(ctx, "/users/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusCreated || status == http.StatusOK:
		return nil
	case status == http.StatusConflict:
		return fmt.Errorf("registering %q: %w", username, domain.ErrAlreadyExists)
	case status == http.StatusBadRequest:
		return fmt.Errorf("registering %q: %w", username, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("register: unexpected status %d: %w", status, domain.ErrServerError)
	}
}

// Logout clears the server-side renewal state. The response also expires
// the cookie, which the jar picks up.
func (a *AuthClient) Logout(ctx context.Context) error {
	status, _, err := a.post(ctx, "/users/logout", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("logout: unexpected status %d: %w", status, domain.ErrServerError)
	}
	return nil
}

func (a *AuthClient) post(ctx context.Context, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, data, nil
}
