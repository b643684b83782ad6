package recurring

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner applies the recurring templates of every user.
type Runner interface {
	ApplyAll(ctx context.Context) (int, error)
}

// Scheduler periodically applies recurring templates in the background.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *logrus.Logger
}

func NewScheduler(runner Runner, interval time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Run applies templates once immediately and then on every tick until ctx is
// cancelled. A failed pass is logged and retried on the next tick.
func (s *Scheduler) Run(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("RecurringScheduler.Run.stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	applied, err := s.runner.ApplyAll(ctx)
	entry := s.logger.WithFields(logrus.Fields{
		"applied":    applied,
		"durationMs": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("RecurringScheduler.runOnce.error")
		return
	}
	entry.Info("RecurringScheduler.runOnce.complete")
}
