package workers

import (
	"context"
	"time"

	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/repositories"
)

// ContestWorker completes active contests whose end date has passed.
type ContestWorker struct {
	contestRepo repositories.ContestRepository
	interval    time.Duration
}

func NewContestWorker(contestRepo repositories.ContestRepository) *ContestWorker {
	return &ContestWorker{
		contestRepo: contestRepo,
		interval:    time.Hour,
	}
}

func (w *ContestWorker) Start(ctx context.Context) {
	go w.completeExpired(ctx)
}

func (w *ContestWorker) completeExpired(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Contest worker stopped")
			return
		case <-ticker.C:
			count, err := w.contestRepo.CompleteExpired(time.Now())
			logger.WorkerLog("contest", "complete_expired", err)
			if err == nil && count > 0 {
				logger.Info("Completed expired contests", "count", count)
			}
		}
	}
}
