// Package poller keeps the service-status cache warm by refreshing it on a
// fixed interval in the background.
package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultInterval = 30 * time.Second

// Poller runs a single refresh loop until its context is cancelled.
type Poller struct {
	refresh  func(ctx context.Context) error
	interval time.Duration
	log      zerolog.Logger
}

// New creates a Poller. If interval <= 0, defaultInterval is used.
func New(refresh func(ctx context.Context) error, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{refresh: refresh, interval: interval, log: log}
}

// Start launches the refresh loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.refresh(ctx); err != nil {
				p.log.Warn().Err(err).Msg("status refresh failed")
			}
		}
	}
}
