package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/leadbrief/internal/model"
)

// Job is one workflow run.
type Job func(ctx context.Context) error

// Runner owns the daemon loop: it waits for the registered trigger's next
// fire time, runs the job, and repeats. Runs are strictly sequential.
type Runner struct {
	registry model.TriggerRegistry
	job      Job
	logger   *slog.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewRunner creates a runner that fires job on the registry's trigger.
func NewRunner(registry model.TriggerRegistry, job Job, logger *slog.Logger) *Runner {
	return &Runner{
		registry: registry,
		job:      job,
		logger:   logger,
		now:      time.Now,
		after:    time.After,
	}
}

// Run blocks until ctx is cancelled, returning nil on graceful shutdown. The
// trigger is re-read before every wait so a reinstall takes effect at the
// next fire. It fails fast with model.ErrNoTrigger if nothing is registered.
func (r *Runner) Run(ctx context.Context) error {
	for {
		t, err := Current(ctx, r.registry)
		if err != nil {
			return err
		}
		loc, err := time.LoadLocation(t.Timezone)
		if err != nil {
			return fmt.Errorf("trigger %s: load timezone %q: %w", t.ID, t.Timezone, err)
		}

		next := NextFire(r.now(), t.Hour, loc)
		r.logger.Info("next run scheduled",
			"trigger_id", t.ID,
			"handler", t.Handler,
			"at", next.Format(time.RFC3339),
		)

		select {
		case <-ctx.Done():
			r.logger.Info("shutting down scheduler")
			return nil
		case <-r.after(next.Sub(r.now())):
		}

		if err := r.job(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				r.logger.Info("shutting down scheduler")
				return nil
			}
			r.logger.Error("scheduled run failed", "trigger_id", t.ID, "error", err)
		}
	}
}
