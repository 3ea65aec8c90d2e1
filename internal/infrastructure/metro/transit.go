package metro

import (
	"context"
	"net/http"

	"github.com/transitline/metro-console/internal/core/domain"
)

// Passenger-facing endpoints, served on the general surface.

func (c *Client) Stations(ctx context.Context) ([]domain.Station, error) {
	var out []domain.Station
	if err := c.do(ctx, http.MethodGet, "/api/v1/stations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Lines(ctx context.Context) ([]domain.Line, error) {
	var out []domain.Line
	if err := c.do(ctx, http.MethodGet, "/api/v1/lines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Fares(ctx context.Context) ([]domain.Fare, error) {
	var out []domain.Fare
	if err := c.do(ctx, http.MethodGet, "/api/v1/fares", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ServiceStatus(ctx context.Context) ([]domain.LineStatus, error) {
	var out []domain.LineStatus
	if err := c.do(ctx, http.MethodGet, "/api/v1/service-status", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlanJourney calls the backend planner; no pathfinding happens on this side.
func (c *Client) PlanJourney(ctx context.Context, req domain.PlanRequest) ([]domain.Journey, error) {
	var out []domain.Journey
	if err := c.do(ctx, http.MethodPost, "/api/v1/routes/plan", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
