package scheduler

import (
	"context"
	"log/slog"
	"time"

	"pub_archiver/internal/domain"
)

// Runner defines the interface for scrape operations.
type Runner interface {
	Run(ctx context.Context) (*domain.ScrapeStats, error)
}

type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runScrape(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runScrape(ctx)
		}
	}
}

func (s *Scheduler) runScrape(ctx context.Context) {
	scrapeCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	if _, err := s.runner.Run(scrapeCtx); err != nil {
		s.logger.Error("scrape failed", "error", err)
	}
}
