package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/transitline/metro-console/internal/api/metrics"
	"github.com/transitline/metro-console/internal/core/domain"
)

const (
	statusKey = "console:status:board"
	statusTTL = 30 * time.Second
)

// StatusCache holds the service-status board for a short window so repeated
// board views don't hammer the collaborator.
type StatusCache struct {
	client *redis.Client
}

func NewStatusCache(client *redis.Client) *StatusCache {
	return &StatusCache{client: client}
}

func (c *StatusCache) Get(ctx context.Context) ([]domain.LineStatus, bool, error) {
	raw, err := c.client.Get(ctx, statusKey).Bytes()
	if err == redis.Nil {
		metrics.StatusCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("status cache get: %w", err)
	}

	var board []domain.LineStatus
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, false, fmt.Errorf("status cache decode: %w", err)
	}
	metrics.StatusCacheTotal.WithLabelValues("hit").Inc()
	return board, true, nil
}

func (c *StatusCache) Set(ctx context.Context, board []domain.LineStatus) error {
	raw, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("status cache encode: %w", err)
	}
	if err := c.client.Set(ctx, statusKey, raw, statusTTL).Err(); err != nil {
		return fmt.Errorf("status cache set: %w", err)
	}
	return nil
}
