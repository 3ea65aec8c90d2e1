package metro

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// memTokenStore is an in-memory TokenStore for tests.
type memTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *memTokenStore) Get(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memTokenStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memTokenStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func TestTransport_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := &memTokenStore{token: "T1"}
	tr := &authTransport{base: http.DefaultTransport, tokens: store, surface: SurfaceGeneral}

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := tr.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer T1" {
		t.Fatalf("expected bearer credential, got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestTransport_PassesThroughWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := &authTransport{base: http.DefaultTransport, tokens: &memTokenStore{}, surface: SurfaceGeneral}

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := tr.RoundTrip(req)
	if err != nil {
		t.Fatalf("public requests must pass through untokened: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "" {
		t.Fatalf("no credential must be attached without a token, got %q", gotAuth)
	}
}

func TestTransport_Unauthorized_ReportsRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	for _, surface := range []string{SurfaceGeneral, SurfaceAdmin} {
		store := &memTokenStore{token: "T1"}
		var rejected string
		tr := &authTransport{
			base:    http.DefaultTransport,
			tokens:  store,
			surface: surface,
			onUnauthorized: func(ctx context.Context, token string) {
				rejected = token
				_ = store.Clear(ctx)
			},
		}

		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		resp, err := tr.RoundTrip(req)
		if err != nil {
			t.Fatalf("[%s] round trip: %v", surface, err)
		}
		resp.Body.Close()

		if rejected != "T1" {
			t.Fatalf("[%s] sink must receive the rejected token, got %q", surface, rejected)
		}
		if tok, _ := store.Get(context.Background()); tok != "" {
			t.Fatalf("[%s] token store must be empty after the 401 handler ran, got %q", surface, tok)
		}
		// The 401 still flows back to the caller.
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("[%s] response must be re-raised, got %d", surface, resp.StatusCode)
		}
	}
}

func TestTransport_UntokenedUnauthorizedDoesNotSignal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	signalled := false
	tr := &authTransport{
		base:    http.DefaultTransport,
		tokens:  &memTokenStore{},
		surface: SurfaceGeneral,
		onUnauthorized: func(context.Context, string) {
			signalled = true
		},
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := tr.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	resp.Body.Close()

	if signalled {
		t.Fatalf("a 401 on an untokened request carries no session to invalidate")
	}
}
