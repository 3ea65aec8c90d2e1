package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/transitline/metro-console/internal/core/domain"
	"github.com/transitline/metro-console/internal/core/ports"
)

// StatusService serves the live service-status board, reading through a
// short-TTL cache so a busy board does not hammer the collaborator.
type StatusService struct {
	api   ports.TransitAPI
	cache ports.StatusCache
	log   zerolog.Logger
}

func NewStatusService(api ports.TransitAPI, cache ports.StatusCache, log zerolog.Logger) *StatusService {
	return &StatusService{api: api, cache: cache, log: log}
}

// Board returns the current per-line status, bucketed by delay severity.
// Cache errors are logged and treated as misses.
func (s *StatusService) Board(ctx context.Context) ([]domain.LineStatus, error) {
	if s.cache != nil {
		board, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("status: cache read failed")
		} else if ok {
			return board, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches the board from the collaborator, classifies each line, and
// repopulates the cache.
func (s *StatusService) Refresh(ctx context.Context) ([]domain.LineStatus, error) {
	board, err := s.api.ServiceStatus(ctx)
	if err != nil {
		return nil, err
	}
	for i := range board {
		board[i].Bucket = board[i].Classify()
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, board); err != nil {
			s.log.Warn().Err(err).Msg("status: cache write failed")
		}
	}
	return board, nil
}
