package staleworker

import (
	"context"
	"time"

	generationlog "techscreen-backend/lib/generation-log"
	baseworker "techscreen-backend/lib/utils/base-worker"
)

const (
	workerName    = "generation_log_stale_worker"
	firstRunDelay = 10 * time.Second
)

// StartWorker periodically fails generation attempts that stayed in progress
// longer than maxAge, for example after a crash mid-call.
func StartWorker(ctx context.Context, tracker generationlog.Provider, maxAge, interval time.Duration) {
	worker := baseworker.NewInstance(workerName, firstRunDelay, interval)
	go worker.Run(ctx, func(ctx context.Context) {
		_, _ = tracker.FailStale(maxAge)
	})
}
