package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

type FeedRefresher interface {
	Refresh(ctx context.Context) error
}

// FeedScheduler periodically refreshes the photo feed widget so that page
// rendering never has to wait on the upstream feed.
type FeedScheduler struct {
	scheduler *gocron.Scheduler
	refresher FeedRefresher
	logger    *slog.Logger
	interval  time.Duration
}

func NewFeedScheduler(refresher FeedRefresher, interval time.Duration, logger *slog.Logger) *FeedScheduler {
	scheduler := gocron.NewScheduler(time.UTC)

	return &FeedScheduler{
		scheduler: scheduler,
		refresher: refresher,
		logger:    logger,
		interval:  interval,
	}
}

func (s *FeedScheduler) Start() {
	s.logger.Info("Starting feed scheduler",
		"interval", s.interval.String(),
	)

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx := context.Background()
		if err := s.refresher.Refresh(ctx); err != nil {
			s.logger.Error("Failed to refresh feed",
				"error", err,
			)
		}
	})

	if err != nil {
		s.logger.Error("Failed to configure scheduler",
			"error", err,
		)

		return
	}

	s.scheduler.StartAsync()
}

func (s *FeedScheduler) Stop() {
	s.logger.Info("Stopping feed scheduler")
	s.scheduler.Stop()
}
