package session

import (
	"context"
	"fmt"
	"time"

	"workgen/internal"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule checks for idle sessions every ten minutes
const DefaultSweepSchedule = "@every 10m"

// Sweeper periodically expires idle sessions
type Sweeper struct {
	cron    *cron.Cron
	manager *Manager
	idle    time.Duration
	logger  *internal.Logger
}

// NewSweeper schedules Manager.Sweep. schedule is a cron spec or a
// descriptor such as "@every 10m".
func NewSweeper(manager *Manager, schedule string, idle time.Duration) (*Sweeper, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	s := &Sweeper{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		manager: manager,
		idle:    idle,
		logger:  internal.DefaultLogger.Named("Sweeper"),
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Sweeper) run() {
	expired := s.manager.Sweep(s.idle)
	s.logger.Debug("sweep finished, %d sessions expired, %d live", len(expired), s.manager.Len())
}

// Start runs the schedule until ctx is cancelled
func (s *Sweeper) Start(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("session sweeper started (idle timeout %s)", s.idle)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("session sweeper stopped")
}
