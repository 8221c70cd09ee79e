package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventdeck/eventdeck-client/internal/core/domain"
	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven/mocks"
)

func staticTokenProvider(token string) *mocks.MockTokenProvider {
	provider := mocks.NewMockTokenProvider()
	provider.AccessTokenFunc = func(ctx context.Context) (string, error) {
		return token, nil
	}
	return provider
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticTokenProvider("token-1"), nil)
	if _, err := client.do(context.Background(), http.MethodGet, "/events/count", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer token-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_SendsUnauthenticatedWithoutSession(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	// Default mock provider reports ErrNotAuthenticated.
	client := NewClient(server.URL, mocks.NewMockTokenProvider(), nil)
	if _, err := client.do(context.Background(), http.MethodGet, "/events/list", nil, nil); err != nil {
		t.Fatalf("expected public request to proceed, got %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_RenewsAndRetriesOnUnauthorized(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		seen = append(seen, auth)
		if auth != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	provider := staticTokenProvider("stale-token")
	provider.RefreshFunc = func(ctx context.Context, stale string) (string, error) {
		if stale != "stale-token" {
			t.Errorf("expected the rejected token handed to Refresh, got %q", stale)
		}
		return "fresh-token", nil
	}

	client := NewClient(server.URL, provider, nil)
	data, err := client.do(context.Background(), http.MethodGet, "/users/profile", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected the retried response body")
	}
	if len(seen) != 2 {
		t.Fatalf("expected exactly two attempts, got %d", len(seen))
	}
	if provider.RefreshCalls() != 1 {
		t.Errorf("expected one renewal, got %d", provider.RefreshCalls())
	}
}

func TestClient_SecondUnauthorizedForcesLogout(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := staticTokenProvider("doomed-token")
	provider.RefreshFunc = func(ctx context.Context, stale string) (string, error) {
		return "still-doomed", nil
	}

	client := NewClient(server.URL, provider, nil)
	_, err := client.do(context.Background(), http.MethodGet, "/users/profile", nil, nil)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected the retry budget to stop at two attempts, got %d", attempts)
	}
	if provider.InvalidateCalls() != 1 {
		t.Errorf("expected exactly one invalidation, got %d", provider.InvalidateCalls())
	}
}

func TestClient_UnauthenticatedRequestNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := mocks.NewMockTokenProvider()
	client := NewClient(server.URL, provider, nil)

	_, err := client.do(context.Background(), http.MethodGet, "/users/profile", nil, nil)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected no retry without a token, got %d attempts", attempts)
	}
	if provider.RefreshCalls() != 0 {
		t.Errorf("expected no renewal without a token, got %d", provider.RefreshCalls())
	}
}

func TestClient_RenewalFailureSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	// Default mock Refresh fails with ErrRenewalFailed.
	provider := staticTokenProvider("stale")
	client := NewClient(server.URL, provider, nil)

	_, err := client.do(context.Background(), http.MethodGet, "/users/profile", nil, nil)
	if !errors.Is(err, domain.ErrRenewalFailed) {
		t.Fatalf("expected ErrRenewalFailed, got %v", err)
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, wantErr: domain.ErrInvalidInput},
		{name: "forbidden", status: http.StatusForbidden, wantErr: domain.ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, wantErr: domain.ErrNotFound},
		{name: "conflict", status: http.StatusConflict, wantErr: domain.ErrAlreadyExists},
		{name: "server error", status: http.StatusInternalServerError, wantErr: domain.ErrServerError},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: domain.ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(server.URL, staticTokenProvider("token"), nil)
			_, err := client.do(context.Background(), http.MethodGet, "/events/list", nil, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("status %d: expected %v, got %v", tt.status, tt.wantErr, err)
			}
		})
	}
}

func TestClient_NoContentYieldsEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticTokenProvider("token"), nil)

	var events []domain.Event
	if err := client.getJSON(context.Background(), "/events/list", nil, &events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events != nil {
		t.Errorf("expected nil slice for 204, got %v", events)
	}
}

func TestClient_ServerErrorsNeverRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := staticTokenProvider("token")
	client := NewClient(server.URL, provider, nil)

	_, err := client.do(context.Background(), http.MethodGet, "/events/list", nil, nil)
	if !errors.Is(err, domain.ErrServerError) {
		t.Fatalf("expected ErrServerError, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt for a 5xx, got %d", attempts)
	}
	if provider.RefreshCalls() != 0 {
		t.Errorf("expected no renewal for a 5xx, got %d", provider.RefreshCalls())
	}
}
