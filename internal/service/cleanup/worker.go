package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// JobPruner drops finished background jobs and reports how many it removed.
type JobPruner interface {
	CleanupOldJobs() int
}

type Worker struct {
	Jobs     JobPruner
	Interval time.Duration
}

func NewWorker(jobs JobPruner, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Worker{Jobs: jobs, Interval: interval}
}

// Start runs the cleanup once, then on every tick until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Info().Str("component", "cleanup").Dur("interval", w.Interval).Msg("background worker started")
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("component", "cleanup").Msg("background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() {
	log.Debug().Str("component", "cleanup").Msg("starting scheduled cleanup task")
	if removed := w.Jobs.CleanupOldJobs(); removed > 0 {
		log.Info().Str("component", "cleanup").Int("removed", removed).Msg("removed expired jobs")
	}
}
