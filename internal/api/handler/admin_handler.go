package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/transitline/metro-console/internal/core/domain"
	"github.com/transitline/metro-console/internal/core/ports"
)

// AdminHandler serves the management pages. Reads of shared reference data
// go through the general surface; every mutation goes through the admin
// surface client.
type AdminHandler struct {
	admin    ports.AdminAPI
	transit  ports.TransitAPI
	sessions ports.SessionService
}

func NewAdminHandler(admin ports.AdminAPI, transit ports.TransitAPI, sessions ports.SessionService) *AdminHandler {
	return &AdminHandler{admin: admin, transit: transit, sessions: sessions}
}

// Dashboard renders the admin landing data: who is signed in plus the
// analytics summary block (the console shows totals only, no charts).
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	summary, err := h.admin.AnalyticsSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user":      h.sessions.Current(),
		"analytics": summary,
	})
}

// Analytics returns the summary block for the analytics page.
func (h *AdminHandler) Analytics(c echo.Context) error {
	summary, err := h.admin.AnalyticsSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// ── Stations ─────────────────────────────────────────────────────────────────

func (h *AdminHandler) ListStations(c echo.Context) error {
	stations, err := h.transit.Stations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stations)
}

func (h *AdminHandler) CreateStation(c echo.Context) error {
	var s domain.Station
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	created, err := h.admin.CreateStation(c.Request().Context(), s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) UpdateStation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var s domain.Station
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	s.ID = id
	updated, err := h.admin.UpdateStation(c.Request().Context(), s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *AdminHandler) DeleteStation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteStation(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Lines ────────────────────────────────────────────────────────────────────

func (h *AdminHandler) ListLines(c echo.Context) error {
	lines, err := h.transit.Lines(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *AdminHandler) CreateLine(c echo.Context) error {
	var l domain.Line
	if err := c.Bind(&l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	created, err := h.admin.CreateLine(c.Request().Context(), l)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) UpdateLine(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var l domain.Line
	if err := c.Bind(&l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	l.ID = id
	updated, err := h.admin.UpdateLine(c.Request().Context(), l)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *AdminHandler) DeleteLine(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteLine(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Routes ───────────────────────────────────────────────────────────────────

func (h *AdminHandler) ListRoutes(c echo.Context) error {
	routes, err := h.admin.RouteDefinitions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, routes)
}

func (h *AdminHandler) CreateRoute(c echo.Context) error {
	var r domain.RouteDefinition
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	created, err := h.admin.CreateRouteDefinition(c.Request().Context(), r)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) DeleteRoute(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteRouteDefinition(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Fares & service status ───────────────────────────────────────────────────

func (h *AdminHandler) ListFares(c echo.Context) error {
	fares, err := h.transit.Fares(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fares)
}

func (h *AdminHandler) UpdateFare(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var f domain.Fare
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	f.ID = id
	updated, err := h.admin.UpdateFare(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *AdminHandler) SetLineStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var s domain.LineStatus
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	s.LineID = id
	if err := h.admin.SetLineStatus(c.Request().Context(), s); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Users ────────────────────────────────────────────────────────────────────

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var u domain.AdminUser
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	u.ID = id
	updated, err := h.admin.UpdateUser(c.Request().Context(), u)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
