package metro

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/transitline/metro-console/internal/core/domain"
	"github.com/transitline/metro-console/internal/core/service"
)

func newTestClient(t *testing.T, srvURL, surface string, store *memTokenStore, onUnauth UnauthorizedFunc) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: srvURL, Surface: surface}, store, onUnauth, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestClient_Login_DecodesPassenger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.com" || body["password"] != "x" {
			t.Fatalf("unexpected credentials payload: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "T",
			"token_type":   "bearer",
			"user": map[string]any{
				"id": 1, "email": "a@b.com", "name": "Ada",
				"is_admin": false, "roles": []string{"user"},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, SurfaceGeneral, &memTokenStore{}, nil)

	token, id, err := c.Login(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "T" {
		t.Fatalf("expected token T, got %q", token)
	}
	p, ok := id.(*domain.Passenger)
	if !ok {
		t.Fatalf("is_admin=false must decode to a Passenger, got %T", id)
	}
	if p.ID != 1 || p.Name != "Ada" || !domain.HasRole(p, "user") {
		t.Fatalf("unexpected passenger: %+v", p)
	}
}

func TestClient_Login_RejectionCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "incorrect email or password"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, SurfaceGeneral, &memTokenStore{}, nil)

	_, _, err := c.Login(context.Background(), "a@b.com", "bad")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if !strings.Contains(err.Error(), "incorrect email or password") {
		t.Fatalf("backend detail must surface verbatim, got %q", err.Error())
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := newTestClient(t, srv.URL, SurfaceGeneral, &memTokenStore{}, nil)

	if _, _, err := c.Login(context.Background(), "a@b.com", "x"); !errors.Is(err, domain.ErrNetworkUnavailable) {
		t.Fatalf("expected ErrNetworkUnavailable, got %v", err)
	}
	if _, err := c.Stations(context.Background()); !errors.Is(err, domain.ErrNetworkUnavailable) {
		t.Fatalf("expected ErrNetworkUnavailable for data reads, got %v", err)
	}
}

func TestClient_CurrentIdentity_DecodesAdministrator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer T1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 9, "email": "ops@metro", "username": "ops",
			"full_name": "Network Ops", "is_admin": true,
			"is_active": true, "roles": []string{"operator"},
		})
	}))
	defer srv.Close()

	store := &memTokenStore{token: "T1"}
	c := newTestClient(t, srv.URL, SurfaceAdmin, store, nil)

	id, err := c.CurrentIdentity(context.Background())
	if err != nil {
		t.Fatalf("current identity: %v", err)
	}
	a, ok := id.(*domain.Administrator)
	if !ok {
		t.Fatalf("is_admin=true must decode to an Administrator, got %T", id)
	}
	if a.Username != "ops" || !a.Active {
		t.Fatalf("unexpected administrator: %+v", a)
	}
}

func TestClient_CurrentIdentity_ExpiredSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, SurfaceGeneral, &memTokenStore{token: "old"}, nil)

	if _, err := c.CurrentIdentity(context.Background()); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

// TestClient_SessionTeardownOnUpstream401 drives the full loop: an
// authenticated admin session, a later 401 from the collaborator, and a
// fresh resolution observing no session.
func TestClient_SessionTeardownOnUpstream401(t *testing.T) {
	authorized := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "T-admin",
				"token_type":   "bearer",
				"user": map[string]any{
					"id": 2, "email": "ops@metro", "is_admin": true, "roles": []string{"admin"},
				},
			})
		default:
			if !authorized || r.Header.Get("Authorization") != "Bearer T-admin" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte("[]"))
		}
	}))
	defer srv.Close()

	store := &memTokenStore{}
	var sessions *service.SessionManager
	onUnauth := func(ctx context.Context, rejected string) {
		sessions.Invalidate(ctx, rejected)
	}
	c := newTestClient(t, srv.URL, SurfaceAdmin, store, onUnauth)
	sessions = service.NewSessionManager(c, store, zerolog.Nop())

	if _, err := sessions.Login(context.Background(), "ops@metro", "x"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := c.Users(context.Background()); err != nil {
		t.Fatalf("authorized read: %v", err)
	}

	// The backend revokes the token out of band.
	authorized = false
	if _, err := c.Users(context.Background()); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired after revocation, got %v", err)
	}
	if tok, _ := store.Get(context.Background()); tok != "" {
		t.Fatalf("token store must be empty after the 401, got %q", tok)
	}
	if sessions.IsAuthenticated() {
		t.Fatalf("identity must not outlive its token")
	}

	// A fresh startup resolution reports no session without a network call.
	fresh := service.NewSessionManager(c, store, zerolog.Nop())
	fresh.Resolve(context.Background())
	if fresh.IsAuthenticated() {
		t.Fatalf("fresh resolution must report identity absent")
	}
}
