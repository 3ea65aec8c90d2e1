package ports

import (
	"context"

	"github.com/transitline/metro-console/internal/core/domain"
)

// StatusCache is a short-lived cache for the service-status board.
type StatusCache interface {
	// Get returns the cached board and whether the entry was present.
	Get(ctx context.Context) ([]domain.LineStatus, bool, error)
	Set(ctx context.Context, board []domain.LineStatus) error
}
