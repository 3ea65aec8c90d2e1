package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/transitline/metro-console/internal/api/metrics"
	"github.com/transitline/metro-console/internal/core/domain"
	"github.com/transitline/metro-console/internal/core/ports"
)

// Dashboard targets per surface, used as the post-login redirect when no
// attempted path was carried.
const (
	dashboardPath      = "/dashboard"
	adminDashboardPath = "/admin/dashboard"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	From     string `json:"from,omitempty" form:"from"`
}

type registerRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Loading       bool            `json:"loading,omitempty"`
	IsAdmin       bool            `json:"is_admin"`
	User          domain.Identity `json:"user,omitempty"`
	RedirectTo    string          `json:"redirect_to,omitempty"`
}

// Login authenticates the general surface.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, dashboardPath)
}

// AdminLogin authenticates the admin surface. Same unified credentials
// endpoint upstream; only the default redirect differs. A passenger signing
// in here still gets a session, and the admin guard bounces them afterwards.
//
// @Summary      Sign in (admin surface)
// @Tags         auth
// @Router       /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, adminDashboardPath)
}

func (h *AuthHandler) login(c echo.Context, defaultTarget string) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	target := sanitizeFrom(req.From, c.QueryParam("from"))
	if target == "" {
		target = defaultTarget
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		IsAdmin:       domain.IsAdministrator(id),
		User:          id,
		RedirectTo:    target,
	})
}

// Register creates an account; the backend auto-logs-in, so a successful
// registration responds like a login.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.sessions.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	return c.JSON(http.StatusCreated, sessionResponse{
		Authenticated: true,
		IsAdmin:       domain.IsAdministrator(id),
		User:          id,
		RedirectTo:    dashboardPath,
	})
}

// Logout drops the session. Idempotent: logging out twice is not an error.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session state so the UI can decide what to
// render without tripping a guard.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	id := h.sessions.Current()
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: id != nil,
		Loading:       h.sessions.Loading(),
		IsAdmin:       domain.IsAdministrator(id),
		User:          id,
	})
}

// LoginPage describes the login form; it exists server-side so "already on a
// login route" is a real location for the expired-session redirect check.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return loginPage(c, "login")
}

func (h *AuthHandler) AdminLoginPage(c echo.Context) error {
	return loginPage(c, "admin_login")
}

func loginPage(c echo.Context, page string) error {
	return c.JSON(http.StatusOK, map[string]string{
		"page": page,
		"from": sanitizeFrom(c.QueryParam("from")),
	})
}

// sanitizeFrom returns the first usable attempted-path hint. Only site-local
// paths are honored, so a crafted from parameter cannot turn the login flow
// into an open redirect.
func sanitizeFrom(candidates ...string) string {
	for _, from := range candidates {
		if from == "" {
			continue
		}
		if strings.HasPrefix(from, "/") && !strings.HasPrefix(from, "//") {
			return from
		}
	}
	return ""
}
