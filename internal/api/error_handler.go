package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apimiddleware "github.com/transitline/metro-console/internal/api/middleware"
	"github.com/transitline/metro-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Turns an expired session into a redirect to the surface-appropriate
//     login page, unless the request is already on a login route.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrSessionExpired) {
			if target, ok := expiredSessionTarget(c.Path()); ok {
				_ = c.Redirect(http.StatusFound, target)
				return
			}
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// expiredSessionTarget picks the login route for a request whose upstream
// call came back 401. Requests already on a login route get no redirect;
// there the 401 means rejected credentials, not an expired session.
func expiredSessionTarget(path string) (string, bool) {
	if path == apimiddleware.LoginPath || path == apimiddleware.AdminLoginPath {
		return "", false
	}
	if strings.HasPrefix(path, "/admin") {
		return apimiddleware.AdminLoginPath, true
	}
	return apimiddleware.LoginPath, true
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired"
	case errors.Is(err, domain.ErrNetworkUnavailable):
		return http.StatusServiceUnavailable, "metro api unreachable, check your connection"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "resource already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
