package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/transitline/metro-console/internal/core/domain"
	"github.com/transitline/metro-console/internal/core/ports"
)

// ConsoleHandler serves the passenger-facing pages: dashboard, journey
// planner, and the network reference data behind them.
type ConsoleHandler struct {
	transit  ports.TransitAPI
	status   BoardReader
	sessions ports.SessionService
}

// BoardReader is what the handler needs from the status service.
type BoardReader interface {
	Board(ctx context.Context) ([]domain.LineStatus, error)
}

func NewConsoleHandler(transit ports.TransitAPI, status BoardReader, sessions ports.SessionService) *ConsoleHandler {
	return &ConsoleHandler{transit: transit, status: status, sessions: sessions}
}

// Dashboard renders the signed-in passenger's landing data.
//
// @Summary      Passenger dashboard
// @Tags         console
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /dashboard [get]
func (h *ConsoleHandler) Dashboard(c echo.Context) error {
	board, err := h.status.Board(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user":   h.sessions.Current(),
		"status": board,
	})
}

type planRequest struct {
	FromStationID int64  `json:"from_station_id" validate:"required"`
	ToStationID   int64  `json:"to_station_id" validate:"required,nefield=FromStationID"`
	DepartAt      string `json:"depart_at,omitempty"`
}

// journeyView decorates a Journey with its display duration.
type journeyView struct {
	domain.Journey
	Duration string `json:"duration"`
}

// PlanJourney asks the backend planner for route options and formats them
// for display. Pathfinding itself lives upstream.
//
// @Summary      Plan a journey
// @Tags         console
// @Accept       json
// @Produce      json
// @Param        body  body      planRequest  true  "Journey endpoints"
// @Success      200   {array}   journeyView
// @Router       /routes/search [post]
func (h *ConsoleHandler) PlanJourney(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan := domain.PlanRequest{
		FromStationID: req.FromStationID,
		ToStationID:   req.ToStationID,
	}
	if req.DepartAt != "" {
		at, err := time.Parse(time.RFC3339, req.DepartAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "depart_at must be RFC 3339")
		}
		plan.DepartAt = &at
	}

	journeys, err := h.transit.PlanJourney(c.Request().Context(), plan)
	if err != nil {
		return err
	}

	views := make([]journeyView, 0, len(journeys))
	for _, j := range journeys {
		views = append(views, journeyView{
			Journey:  j,
			Duration: domain.FormatDuration(j.DurationMin),
		})
	}
	return c.JSON(http.StatusOK, views)
}

// ServiceStatus serves the public status board.
//
// @Summary      Service status board
// @Tags         console
// @Produce      json
// @Success      200  {array}  domain.LineStatus
// @Router       /status [get]
func (h *ConsoleHandler) ServiceStatus(c echo.Context) error {
	board, err := h.status.Board(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

// Stations lists the network's stations, optionally filtered by a substring
// match on name or code (the search box on the stations page).
func (h *ConsoleHandler) Stations(c echo.Context) error {
	stations, err := h.transit.Stations(c.Request().Context())
	if err != nil {
		return err
	}
	if q := c.QueryParam("q"); q != "" {
		stations = filterStations(stations, q)
	}
	return c.JSON(http.StatusOK, stations)
}

// Lines lists the network's lines.
func (h *ConsoleHandler) Lines(c echo.Context) error {
	lines, err := h.transit.Lines(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lines)
}

// Fares lists the zone fare table.
func (h *ConsoleHandler) Fares(c echo.Context) error {
	fares, err := h.transit.Fares(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fares)
}

// filterStations keeps stations whose name or code contains q,
// case-insensitively.
func filterStations(stations []domain.Station, q string) []domain.Station {
	q = strings.ToLower(q)
	out := make([]domain.Station, 0, len(stations))
	for _, s := range stations {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Code), q) {
			out = append(out, s)
		}
	}
	return out
}
