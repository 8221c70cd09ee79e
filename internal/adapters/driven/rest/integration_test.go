package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventdeck/eventdeck-client/internal/core/ports/driven/mocks"
	"github.com/eventdeck/eventdeck-client/internal/core/services"
)

func signToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// catalogServer fakes the remote service: login hands out tokenA plus the
// renewal cookie, refresh upgrades to tokenB, and profile only accepts
// tokenB.
type catalogServer struct {
	tokenA string
	tokenB string

	refreshCalls int
	profileSeen  []string
}

func (s *catalogServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			http.SetCookie(w, &http.Cookie{Name: "refreshTokenCookie", Value: "renewal-credential", Path: "/"})
			json.NewEncoder(w).Encode(map[string]any{
				"id":          7,
				"username":    "alice",
				"email":       "alice@example.com",
				"roles":       []string{"ROLE_USER"},
				"accessToken": s.tokenA,
				"tokenType":   "Bearer",
			})
		case "/users/refreshtoken":
			s.refreshCalls++
			if _, err := r.Cookie("refreshTokenCookie"); err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprintf(w, `{"accessToken":%q}`, s.tokenB)
		case "/users/profile":
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			s.profileSeen = append(s.profileSeen, token)
			if token != s.tokenB {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"username":"alice","email":"alice@example.com"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

// Login, hit a protected endpoint with a token the server has revoked,
// and verify the pipeline renews once and retries once.
func TestPipeline_LoginRejectedTokenRenewRetry(t *testing.T) {
	remote := &catalogServer{
		tokenA: signToken(t, "alice", time.Now().Add(1*time.Hour)),
		tokenB: signToken(t, "alice", time.Now().Add(2*time.Hour)),
	}
	server := httptest.NewServer(remote.handler(t))
	defer server.Close()

	store := mocks.NewMockCredentialStore()
	notifier := mocks.NewMockNotifier()
	auth, err := NewAuthClient(server.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessions := services.NewSessionManager(services.SessionManagerConfig{
		Store:    store,
		API:      auth,
		Notifier: notifier,
	})
	user := NewUserClient(NewClient(server.URL, sessions, nil))

	if _, err := sessions.Login(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	profile, err := user.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.Username != "alice" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	if remote.refreshCalls != 1 {
		t.Errorf("expected exactly one renewal, got %d", remote.refreshCalls)
	}
	if len(remote.profileSeen) != 2 {
		t.Errorf("expected two profile attempts, got %d", len(remote.profileSeen))
	}
	if stored := store.Stored(); stored == nil || stored.Token != remote.tokenB {
		t.Error("expected the renewed token persisted")
	}
	if notices := notifier.Notices(); len(notices) != 0 {
		t.Errorf("expected no expiry notices on a successful renewal, got %v", notices)
	}
}

// A locally expired token is renewed before dispatch: the server never
// sees the stale one.
func TestPipeline_LocallyExpiredTokenRenewedBeforeDispatch(t *testing.T) {
	remote := &catalogServer{
		tokenA: signToken(t, "alice", time.Now().Add(-1*time.Minute)),
		tokenB: signToken(t, "alice", time.Now().Add(1*time.Hour)),
	}
	server := httptest.NewServer(remote.handler(t))
	defer server.Close()

	store := mocks.NewMockCredentialStore()
	auth, err := NewAuthClient(server.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessions := services.NewSessionManager(services.SessionManagerConfig{
		Store: store,
		API:   auth,
	})
	user := NewUserClient(NewClient(server.URL, sessions, nil))

	if _, err := sessions.Login(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := user.Profile(context.Background()); err != nil {
		t.Fatalf("profile failed: %v", err)
	}

	if remote.refreshCalls != 1 {
		t.Errorf("expected one pre-dispatch renewal, got %d", remote.refreshCalls)
	}
	for _, seen := range remote.profileSeen {
		if seen == remote.tokenA {
			t.Error("expected the expired token never sent")
		}
	}
}
