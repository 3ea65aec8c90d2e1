package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/transitline/metro-console/internal/core/domain"
)

// Session is the read side of the session manager the guards consult.
type Session interface {
	Loading() bool
	Current() domain.Identity
}

// LoginPath and AdminLoginPath are the redirect targets for unauthenticated
// requests, per surface.
const (
	LoginPath      = "/login"
	AdminLoginPath = "/admin/login"
)

// Guard gates passenger views. While the startup session resolution is in
// flight it renders a holding response instead of a redirect, so a valid
// returning session is not bounced to the login page. Once resolved, an
// unauthenticated request is redirected to the login page carrying the
// attempted path so the login flow can return the user afterwards.
func Guard(sess Session) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess.Loading() {
				return loadingPlaceholder(c)
			}
			if sess.Current() == nil {
				return redirectToLogin(c, LoginPath)
			}
			return next(c)
		}
	}
}

// AdminGuard gates management views. Anything other than an Administrator
// identity, absent or passenger alike, is redirected to the admin login page; a
// passenger must never see admin content, even transiently. When the call
// site names required roles, an administrator lacking all of them gets an
// in-place access-denied view rather than a redirect.
func AdminGuard(sess Session, requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess.Loading() {
				return loadingPlaceholder(c)
			}
			id := sess.Current()
			if !domain.IsAdministrator(id) {
				return redirectToLogin(c, AdminLoginPath)
			}
			for _, role := range requiredRoles {
				if domain.HasRole(id, role) {
					return next(c)
				}
			}
			if len(requiredRoles) > 0 {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":         "access denied",
					"required_role": requiredRoles[0],
				})
			}
			return next(c)
		}
	}
}

func loadingPlaceholder(c echo.Context) error {
	c.Response().Header().Set("Retry-After", "1")
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "resolving session"})
}

func redirectToLogin(c echo.Context, loginPath string) error {
	from := c.Request().URL.RequestURI()
	return c.Redirect(http.StatusFound, loginPath+"?from="+url.QueryEscape(from))
}
