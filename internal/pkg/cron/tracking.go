package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/metrics"
)

const pendingMigrationsInterval = 15 * time.Minute

type TrackingJobs struct {
	projectRepo project.ProjectRepository
	metrics     *metrics.Metrics
}

func NewTrackingJobs(projectRepo project.ProjectRepository, m *metrics.Metrics) *TrackingJobs {
	return &TrackingJobs{
		projectRepo: projectRepo,
		metrics:     m,
	}
}

func (j *TrackingJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("count_pending_mode_migrations", pendingMigrationsInterval, j.CountPendingModeMigrations)
}

// CountPendingModeMigrations publishes how many projects still use a retired
// tracking mode, so operators know when `punchctl migrate-modes` is due.
func (j *TrackingJobs) CountPendingModeMigrations(ctx context.Context) error {
	for retired := range tracking.RenamedModes {
		count, err := j.projectRepo.CountByTrackingMode(ctx, retired)
		if err != nil {
			return fmt.Errorf("failed to count projects on %s: %w", retired, err)
		}

		if j.metrics != nil {
			j.metrics.PendingModeMigrations.WithLabelValues(retired.String()).Set(float64(count))
		}
		if count > 0 {
			slog.Warn("Projects still on a retired tracking mode",
				"mode", retired.String(),
				"replacement", tracking.RenamedModes[retired].String(),
				"projects", count,
			)
		}
	}
	return nil
}

// JobRunObserver counts job runs on m
func JobRunObserver(m *metrics.Metrics) RunObserver {
	return func(job string, err error) {
		result := "success"
		if err != nil {
			result = "failure"
		}
		m.JobRuns.WithLabelValues(job, result).Inc()
	}
}
