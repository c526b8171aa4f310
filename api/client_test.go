// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/taskboard-foundation/taskboard/lib/schema"
	"github.com/taskboard-foundation/taskboard/lib/secret"
	"github.com/taskboard-foundation/taskboard/lib/session"
)

// testEnv is one client wired to one httptest server, with a fresh
// session file under the test's temp directory.
type testEnv struct {
	client    *Client
	server    *httptest.Server
	sessions  *session.Store
	requests  atomic.Int64
	expired   atomic.Int64
	lastAuth  atomic.Value // string: last Authorization header seen
}

// newTestEnv starts a server whose handler runs behind request
// accounting. The client starts unauthenticated.
func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	env := &testEnv{}
	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1)
		env.lastAuth.Store(r.Header.Get("Authorization"))
		handler(w, r)
	}))
	t.Cleanup(env.server.Close)

	env.sessions = session.NewStore(filepath.Join(t.TempDir(), "session.json"))

	client, err := NewClient(ClientConfig{
		BaseURL: env.server.URL,
		Session: env.sessions,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnSessionExpired: func() {
			env.expired.Add(1)
		},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	env.client = client
	return env
}

// authenticate seeds the session store directly, bypassing the login
// endpoint.
func (env *testEnv) authenticate(t *testing.T, token string) {
	t.Helper()
	if err := env.sessions.Set(token, "tester"); err != nil {
		t.Fatalf("seeding session: %v", err)
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, value any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		t.Fatalf("encoding response: %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	sessions := session.NewStore(filepath.Join(t.TempDir(), "session.json"))

	t.Run("missing base URL", func(t *testing.T) {
		if _, err := NewClient(ClientConfig{Session: sessions}); err == nil {
			t.Fatal("expected error for missing BaseURL")
		}
	})
	t.Run("non-http scheme", func(t *testing.T) {
		if _, err := NewClient(ClientConfig{BaseURL: "ftp://host", Session: sessions}); err == nil {
			t.Fatal("expected error for ftp scheme")
		}
	})
	t.Run("missing session", func(t *testing.T) {
		if _, err := NewClient(ClientConfig{BaseURL: "http://host"}); err == nil {
			t.Fatal("expected error for missing session store")
		}
	})
}

func TestBearerTokenAttached(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []schema.User{})
	})
	env.authenticate(t, "tok-123")

	if _, err := env.client.Users(context.Background()); err != nil {
		t.Fatalf("Users: %v", err)
	}
	if got := env.lastAuth.Load().(string); got != "Bearer tok-123" {
		t.Fatalf("Authorization header = %q, want %q", got, "Bearer tok-123")
	}
}

func TestUnauthenticatedRequestsCarryNoHeader(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []schema.Team{})
	})

	if _, err := env.client.Teams(context.Background()); err != nil {
		t.Fatalf("Teams: %v", err)
	}
	if got := env.lastAuth.Load().(string); got != "" {
		t.Fatalf("Authorization header = %q, want empty", got)
	}
}

func TestLoginPersistsSessionAndAttachesToken(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/users/login":
			var body struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decoding login body: %v", err)
			}
			if body.Email != "u@x.com" || body.Password != "secret" {
				t.Errorf("login body = %+v", body)
			}
			writeJSON(t, w, schema.AuthResponse{
				Token: "issued-token",
				User:  schema.User{UserID: 1, Username: "u"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/users/get-user":
			writeJSON(t, w, schema.User{UserID: 1, Username: "u"})
		default:
			http.NotFound(w, r)
		}
	})

	password, err := secret.NewFromString("secret")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}
	defer password.Close()

	auth, err := env.client.Login(context.Background(), "u@x.com", password)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if auth.Token != "issued-token" {
		t.Fatalf("token = %q", auth.Token)
	}
	if !env.sessions.Authenticated() {
		t.Fatal("session not authenticated after login")
	}
	if username := env.sessions.Username(); username != "u" {
		t.Fatalf("stored username = %q, want %q", username, "u")
	}

	// The very next request must carry the issued token.
	if _, err := env.client.CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if got := env.lastAuth.Load().(string); got != "Bearer issued-token" {
		t.Fatalf("Authorization header = %q after login", got)
	}
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	password, err := secret.NewFromString("pw")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}
	defer password.Close()

	var validationErr *ValidationError
	if _, err := env.client.Login(context.Background(), "", password); !errors.As(err, &validationErr) {
		t.Fatalf("empty email: got %v, want *ValidationError", err)
	}
	if _, err := env.client.Login(context.Background(), "u@x.com", nil); !errors.As(err, &validationErr) {
		t.Fatalf("nil password: got %v, want *ValidationError", err)
	}
	if n := env.requests.Load(); n != 0 {
		t.Fatalf("server saw %d requests, want 0", n)
	}
}

func TestUnauthorizedClearsSessionExactlyOnce(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(t, w, map[string]string{"message": "token expired"})
	})
	env.authenticate(t, "stale-token")

	// Errors are never cached, so each call dispatches; only the
	// first 401 holds a session to tear down.
	for i := 0; i < 3; i++ {
		_, err := env.client.Users(context.Background())
		if !IsUnauthorized(err) {
			t.Fatalf("call %d: got %v, want 401 error", i, err)
		}
	}

	if env.sessions.Authenticated() {
		t.Fatal("session still authenticated after 401")
	}
	if n := env.expired.Load(); n != 1 {
		t.Fatalf("OnSessionExpired invoked %d times, want 1", n)
	}
}

func TestUnauthorizedResetsCache(t *testing.T) {
	var unauthorized atomic.Bool
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams":
			writeJSON(t, w, []schema.Team{{TeamID: 1, TeamName: "core"}})
		default:
			if unauthorized.Load() {
				w.WriteHeader(http.StatusUnauthorized)
				writeJSON(t, w, map[string]string{"message": "no"})
				return
			}
			writeJSON(t, w, []schema.User{})
		}
	})
	env.authenticate(t, "tok")

	if _, err := env.client.Teams(context.Background()); err != nil {
		t.Fatalf("Teams: %v", err)
	}
	before := env.requests.Load()

	unauthorized.Store(true)
	if _, err := env.client.Users(context.Background()); !IsUnauthorized(err) {
		t.Fatal("expected 401 from Users")
	}

	// The cached Teams entry was dropped by the reset, so the next
	// read dispatches again.
	if _, err := env.client.Teams(context.Background()); err != nil {
		t.Fatalf("Teams after reset: %v", err)
	}
	if got := env.requests.Load(); got != before+2 {
		t.Fatalf("requests = %d, want %d (401 plus refetched teams)", got, before+2)
	}
}

func TestLogoutClearsSessionAndCache(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []schema.Team{})
	})
	env.authenticate(t, "tok")

	if _, err := env.client.Teams(context.Background()); err != nil {
		t.Fatalf("Teams: %v", err)
	}
	if err := env.client.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if env.sessions.Authenticated() {
		t.Fatal("session survives logout")
	}

	before := env.requests.Load()
	if _, err := env.client.Teams(context.Background()); err != nil {
		t.Fatalf("Teams after logout: %v", err)
	}
	if got := env.requests.Load(); got != before+1 {
		t.Fatalf("cached entry survived logout: requests = %d, want %d", got, before+1)
	}

	// Logging out twice is a no-op.
	if err := env.client.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestServerErrorMessageExtracted(t *testing.T) {
	t.Run("json message body", func(t *testing.T) {
		env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			writeJSON(t, w, map[string]string{"message": "duplicate title"})
		})
		_, err := env.client.CreateProject(context.Background(), schema.Project{Name: "p"})
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("got %v, want *Error", err)
		}
		if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "duplicate title" {
			t.Fatalf("error = %+v", apiErr)
		}
		if !IsStatus(err, http.StatusConflict) {
			t.Fatal("IsStatus(409) = false")
		}
	})

	t.Run("plain body", func(t *testing.T) {
		env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		})
		_, err := env.client.Teams(context.Background())
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("got %v, want *Error", err)
		}
		if apiErr.Message != "upstream exploded" {
			t.Fatalf("message = %q", apiErr.Message)
		}
	})
}

func TestTransportErrorIsNotStatusError(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	env.server.Close()

	_, err := env.client.Teams(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure surfaced as status error: %v", apiErr)
	}
}

func TestSearchNeverCached(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "roadmap" {
			t.Errorf("query = %q", got)
		}
		writeJSON(t, w, schema.SearchResults{
			Tasks: []schema.Task{{ID: 1, Title: "roadmap review", ProjectID: 2}},
		})
	})

	for i := 0; i < 2; i++ {
		results, err := env.client.Search(context.Background(), "roadmap")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results.Tasks) != 1 {
			t.Fatalf("tasks = %d, want 1", len(results.Tasks))
		}
	}
	if n := env.requests.Load(); n != 2 {
		t.Fatalf("requests = %d, want 2 (search bypasses the cache)", n)
	}

	var validationErr *ValidationError
	if _, err := env.client.Search(context.Background(), ""); !errors.As(err, &validationErr) {
		t.Fatalf("empty query: got %v, want *ValidationError", err)
	}
}

func TestCreateAccountPersistsSession(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var user schema.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if user.Username != "newbie" || user.Password != "pw" {
			t.Errorf("registration body = %+v", user)
		}
		writeJSON(t, w, schema.AuthResponse{
			Token: "fresh-token",
			User:  schema.User{UserID: 9, Username: "newbie"},
		})
	})

	password, err := secret.NewFromString("pw")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}
	defer password.Close()

	auth, err := env.client.CreateAccount(context.Background(), CreateAccountRequest{
		Username: "newbie",
		Email:    "n@x.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if auth.User.UserID != 9 {
		t.Fatalf("user id = %d", auth.User.UserID)
	}
	if token, ok := env.sessions.BearerToken(); !ok || token != "fresh-token" {
		t.Fatalf("stored token = %q, %v", token, ok)
	}
}
