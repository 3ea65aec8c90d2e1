package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/transitline/metro-console/internal/core/domain"
)

// stubSession is a fixed session state for guard tests.
type stubSession struct {
	loading bool
	id      domain.Identity
}

func (s *stubSession) Loading() bool            { return s.loading }
func (s *stubSession) Current() domain.Identity { return s.id }

func runGuard(t *testing.T, mw echo.MiddlewareFunc, target string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestGuard_LoadingNeverRedirects(t *testing.T) {
	// Whatever the resolution will turn out to be, the loading phase must
	// render the placeholder rather than bounce the request.
	for _, id := range []domain.Identity{nil, &domain.Passenger{ID: 1}} {
		sess := &stubSession{loading: true, id: id}

		rec, called := runGuard(t, Guard(sess), "/dashboard")
		if called {
			t.Fatalf("guarded content must not render while loading")
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected placeholder status 503, got %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "" {
			t.Fatalf("loading phase must never redirect, got Location %q", loc)
		}

		rec, called = runGuard(t, AdminGuard(sess), "/admin/stations")
		if called {
			t.Fatalf("admin content must not render while loading")
		}
		if loc := rec.Header().Get("Location"); loc != "" {
			t.Fatalf("admin guard must never redirect while loading, got %q", loc)
		}
	}
}

func TestGuard_UnauthenticatedRedirectsWithFrom(t *testing.T) {
	sess := &stubSession{}

	rec, called := runGuard(t, Guard(sess), "/dashboard?tab=journeys")
	if called {
		t.Fatalf("unauthenticated request must not reach the handler")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, LoginPath+"?from=") {
		t.Fatalf("redirect must target the login page with the attempted path, got %q", loc)
	}
	if !strings.Contains(loc, "%2Fdashboard%3Ftab%3Djourneys") {
		t.Fatalf("attempted path (with query) must ride along, got %q", loc)
	}
}

func TestGuard_AuthenticatedRenders(t *testing.T) {
	sess := &stubSession{id: &domain.Passenger{ID: 1}}

	rec, called := runGuard(t, Guard(sess), "/dashboard")
	if !called {
		t.Fatalf("authenticated request must reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminGuard_PassengerNeverRenders(t *testing.T) {
	// A passenger must be bounced even when its role list claims otherwise.
	sess := &stubSession{id: &domain.Passenger{ID: 1, Roles: []string{domain.RoleAdmin}}}

	rec, called := runGuard(t, AdminGuard(sess), "/admin/dashboard")
	if called {
		t.Fatalf("a passenger must never see admin content")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, AdminLoginPath+"?from=") {
		t.Fatalf("expected redirect to admin login, got %q", loc)
	}
}

func TestAdminGuard_AbsentIdentityRedirects(t *testing.T) {
	rec, called := runGuard(t, AdminGuard(&stubSession{}), "/admin/dashboard")
	if called {
		t.Fatalf("absent identity must not reach admin content")
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, AdminLoginPath+"?from=") {
		t.Fatalf("expected redirect to admin login, got %q", loc)
	}
}

func TestAdminGuard_AdministratorRenders(t *testing.T) {
	sess := &stubSession{id: &domain.Administrator{ID: 2}}

	rec, called := runGuard(t, AdminGuard(sess), "/admin/dashboard")
	if !called {
		t.Fatalf("an administrator must render admin content when no role is required")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminGuard_MissingRoleDeniesInPlace(t *testing.T) {
	sess := &stubSession{id: &domain.Administrator{ID: 2, Roles: []string{domain.RoleOperator}}}

	rec, called := runGuard(t, AdminGuard(sess, domain.RoleSuperAdmin), "/admin/users")
	if called {
		t.Fatalf("administrator without the required role must not render")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected in-place 403, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "" {
		t.Fatalf("role denial must not redirect, got Location %q", loc)
	}
	if !strings.Contains(rec.Body.String(), "access denied") {
		t.Fatalf("expected access-denied body, got %s", rec.Body.String())
	}
}

func TestAdminGuard_RoleSatisfiedRenders(t *testing.T) {
	sess := &stubSession{id: &domain.Administrator{ID: 2, Roles: []string{domain.RoleSuperAdmin}}}

	_, called := runGuard(t, AdminGuard(sess, domain.RoleSuperAdmin), "/admin/users")
	if !called {
		t.Fatalf("administrator holding the required role must render")
	}
}
