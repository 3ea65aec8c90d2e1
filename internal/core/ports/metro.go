package ports

import (
	"context"

	"github.com/transitline/metro-console/internal/core/domain"
)

// AuthAPI is the collaborator's authentication surface.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token and the signed-in
	// identity. A rejected attempt yields domain.ErrInvalidCredentials
	// carrying the backend's detail message.
	Login(ctx context.Context, email, password string) (string, domain.Identity, error)
	// Register creates an account; the backend auto-logs-in on success and
	// responds with the same token+identity shape as Login.
	Register(ctx context.Context, name, email, password string) (string, domain.Identity, error)
	// CurrentIdentity resolves the stored token to its identity.
	CurrentIdentity(ctx context.Context) (domain.Identity, error)
}

// TransitAPI is the passenger-facing surface of the collaborator.
type TransitAPI interface {
	Stations(ctx context.Context) ([]domain.Station, error)
	Lines(ctx context.Context) ([]domain.Line, error)
	Fares(ctx context.Context) ([]domain.Fare, error)
	ServiceStatus(ctx context.Context) ([]domain.LineStatus, error)
	PlanJourney(ctx context.Context, req domain.PlanRequest) ([]domain.Journey, error)
}

// AdminAPI is the management surface of the collaborator.
type AdminAPI interface {
	CreateStation(ctx context.Context, s domain.Station) (*domain.Station, error)
	UpdateStation(ctx context.Context, s domain.Station) (*domain.Station, error)
	DeleteStation(ctx context.Context, id int64) error

	CreateLine(ctx context.Context, l domain.Line) (*domain.Line, error)
	UpdateLine(ctx context.Context, l domain.Line) (*domain.Line, error)
	DeleteLine(ctx context.Context, id int64) error

	RouteDefinitions(ctx context.Context) ([]domain.RouteDefinition, error)
	CreateRouteDefinition(ctx context.Context, r domain.RouteDefinition) (*domain.RouteDefinition, error)
	DeleteRouteDefinition(ctx context.Context, id int64) error

	UpdateFare(ctx context.Context, f domain.Fare) (*domain.Fare, error)
	SetLineStatus(ctx context.Context, s domain.LineStatus) error

	Users(ctx context.Context) ([]domain.AdminUser, error)
	UpdateUser(ctx context.Context, u domain.AdminUser) (*domain.AdminUser, error)
	DeleteUser(ctx context.Context, id int64) error

	AnalyticsSummary(ctx context.Context) (*domain.AnalyticsSummary, error)
}
