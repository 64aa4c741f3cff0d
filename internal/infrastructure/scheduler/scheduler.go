package scheduler

import (
	"context"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/domain/tracking"
	"github.com/crisprlt/HabitFlow-sub000/pkg/logger"
	"go.uber.org/zap"
)

// Scheduler runs the nightly reconciliation: streak caches that went stale at
// the day boundary are recomputed from records, and yesterday's stats
// snapshots get a final refresh.
type Scheduler struct {
	tracking tracking.Service
	logger   *logger.Logger
	stop     chan struct{}
}

func NewScheduler(trackingService tracking.Service, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		tracking: trackingService,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	// Run once at startup to repair anything missed while the process was down
	s.runReconciliation()

	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	untilMidnight := nextMidnight.Sub(now)

	s.logger.Info("reconciliation scheduler initialized",
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", untilMidnight))

	go func() {
		timer := time.NewTimer(untilMidnight)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-s.stop:
			return
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		s.runReconciliation()
		for {
			select {
			case <-ticker.C:
				s.runReconciliation()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runReconciliation() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	corrected, err := s.tracking.ReconcileDerivedState(ctx)
	if err != nil {
		s.logger.Error("nightly reconciliation failed", zap.Error(err))
		return
	}

	s.logger.Info("nightly reconciliation completed",
		zap.Int64("streaks_corrected", corrected),
		zap.Duration("duration", time.Since(start)))
}
