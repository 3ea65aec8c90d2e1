package ports

import (
	"context"

	"github.com/transitline/metro-console/internal/core/domain"
)

// SessionService is the console's session state machine as seen by the HTTP
// layer.
type SessionService interface {
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	Register(ctx context.Context, name, email, password string) (domain.Identity, error)
	Logout(ctx context.Context) error

	Current() domain.Identity
	Loading() bool
	HasRole(role string) bool
}
