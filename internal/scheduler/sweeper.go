package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"propboost_backend/platform/logger"
)

const sweepTimeout = 5 * time.Minute

// StaleCallMarker fails voice calls that never reported an outcome.
type StaleCallMarker interface {
	MarkStaleCalls(ctx context.Context, olderThan time.Duration) (int, error)
}

// Sweeper periodically times out stuck voice calls.
type Sweeper struct {
	cron       *cron.Cron
	marker     StaleCallMarker
	staleAfter time.Duration
	log        *logger.Logger
}

// NewSweeper registers the sweep on the given cron spec (e.g. "@every 10m").
func NewSweeper(schedule string, staleAfter time.Duration, marker StaleCallMarker, log *logger.Logger) (*Sweeper, error) {
	s := &Sweeper{
		cron:       cron.New(),
		marker:     marker,
		staleAfter: staleAfter,
		log:        log,
	}
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.marker.MarkStaleCalls(ctx, s.staleAfter)
	if err != nil {
		s.log.Error("stale voice call sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Info("stale voice calls timed out", "count", n, "older_than", s.staleAfter.String())
	}
}
