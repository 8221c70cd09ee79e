package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven"
)

const defaultTimeout = 30 * time.Second

// Client is the bearer-authenticated request pipeline. Every catalog and
// user call funnels through do: attach the current token, send, and on a
// 401 renew once and resend. A second 401 tears the session down.
//
// The retry budget is expressed structurally (first attempt, then at
// most one resend) rather than as mutable state on a shared request.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  driven.TokenProvider
	logger  *slog.Logger
}

// NewClient creates a request pipeline against baseURL. The TokenProvider
// owns all session state; the pipeline only moves tokens.
func NewClient(baseURL string, tokens driven.TokenProvider, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// do runs one logical request through the pipeline and returns the
// response body. A nil query and body are allowed.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	requestID := uuid.NewString()

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotAuthenticated) {
			return nil, err
		}
		// Public endpoints work without a session.
		token = ""
	}

	status, data, err := c.send(ctx, method, path, query, body, token, requestID)
	if err != nil {
		return nil, err
	}
	if status != http.StatusUnauthorized {
		return c.checkStatus(method, path, status, data)
	}

	if token == "" {
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrNotAuthenticated)
	}

	c.logger.Debug("token rejected, renewing and retrying",
		"method", method, "path", path, "request_id", requestID)

	fresh, err := c.tokens.Refresh(ctx, token)
	if err != nil {
		return nil, err
	}

	status, data, err = c.send(ctx, method, path, query, body, fresh, requestID)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		c.logger.Warn("renewed token rejected, forcing logout",
			"method", method, "path", path, "request_id", requestID)
		if err := c.tokens.Invalidate(ctx); err != nil {
			c.logger.Warn("failed to invalidate session", "error", err)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	}
	return c.checkStatus(method, path, status, data)
}

// send performs a single HTTP exchange.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, token, requestID string) (int, []byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug("request completed",
		"method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
	return resp.StatusCode, data, nil
}

// checkStatus maps non-401 response codes to domain errors. 401 never
// reaches here; the retry logic in do owns it.
func (c *Client) checkStatus(method, path string, status int, data []byte) ([]byte, error) {
	switch {
	case status == http.StatusNoContent:
		return nil, nil
	case status >= 200 && status < 300:
		return data, nil
	case status == http.StatusBadRequest:
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrInvalidInput)
	case status == http.StatusForbidden:
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	case status == http.StatusConflict:
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrAlreadyExists)
	case status >= 500:
		return nil, fmt.Errorf("%s %s: status %d: %w", method, path, status, domain.ErrServerError)
	default:
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, status)
	}
}

// getJSON runs a GET and decodes the body into out. A 204 leaves out at
// its zero value.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// postJSON runs a POST and decodes the body into out when out is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, query url.Values, body, out any) error {
	data, err := c.do(ctx, http.MethodPost, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
