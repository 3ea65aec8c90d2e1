package metro

import (
	"context"
	"fmt"
	"net/http"

	"github.com/transitline/metro-console/internal/core/domain"
)

// Management endpoints, served on the admin surface.

func (c *Client) CreateStation(ctx context.Context, s domain.Station) (*domain.Station, error) {
	var out domain.Station
	if err := c.do(ctx, http.MethodPost, "/api/v1/admin/stations", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStation(ctx context.Context, s domain.Station) (*domain.Station, error) {
	var out domain.Station
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/admin/stations/%d", s.ID), s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteStation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/stations/%d", id), nil, nil)
}

func (c *Client) CreateLine(ctx context.Context, l domain.Line) (*domain.Line, error) {
	var out domain.Line
	if err := c.do(ctx, http.MethodPost, "/api/v1/admin/lines", l, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateLine(ctx context.Context, l domain.Line) (*domain.Line, error) {
	var out domain.Line
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/admin/lines/%d", l.ID), l, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteLine(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/lines/%d", id), nil, nil)
}

func (c *Client) RouteDefinitions(ctx context.Context) ([]domain.RouteDefinition, error) {
	var out []domain.RouteDefinition
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/routes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateRouteDefinition(ctx context.Context, r domain.RouteDefinition) (*domain.RouteDefinition, error) {
	var out domain.RouteDefinition
	if err := c.do(ctx, http.MethodPost, "/api/v1/admin/routes", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRouteDefinition(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/routes/%d", id), nil, nil)
}

func (c *Client) UpdateFare(ctx context.Context, f domain.Fare) (*domain.Fare, error) {
	var out domain.Fare
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/admin/fares/%d", f.ID), f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetLineStatus(ctx context.Context, s domain.LineStatus) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/admin/service-status/%d", s.LineID), s, nil)
}

func (c *Client) Users(ctx context.Context) ([]domain.AdminUser, error) {
	var out []domain.AdminUser
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, u domain.AdminUser) (*domain.AdminUser, error) {
	var out domain.AdminUser
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/admin/users/%d", u.ID), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", id), nil, nil)
}

func (c *Client) AnalyticsSummary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	var out domain.AnalyticsSummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/analytics/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
