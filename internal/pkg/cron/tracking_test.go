package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProjects struct {
	counts map[tracking.Mode]int64
	err    error
}

func (f *fakeProjects) GetByID(ctx context.Context, id string) (project.Project, error) {
	return project.Project{}, project.ErrProjectNotFound
}

func (f *fakeProjects) CountByTrackingMode(ctx context.Context, mode tracking.Mode) (int64, error) {
	return f.counts[mode], f.err
}

func (f *fakeProjects) ReplaceTrackingMode(ctx context.Context, from, to tracking.Mode) (int64, error) {
	return 0, nil
}

func TestCountPendingModeMigrations(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	jobs := NewTrackingJobs(&fakeProjects{counts: map[tracking.Mode]int64{tracking.ModeWithHotel: 3}}, m)

	require.NoError(t, jobs.CountPendingModeMigrations(context.Background()))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PendingModeMigrations.WithLabelValues("WITH_HOTEL")))
}

func TestScheduler_RunOnceReportsResults(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	scheduler := NewScheduler(JobRunObserver(m))

	NewTrackingJobs(&fakeProjects{err: errors.New("connection refused")}, m).RegisterJobs(scheduler)
	scheduler.AddJob("noop", pendingMigrationsInterval, func(ctx context.Context) error { return nil })

	scheduler.RunOnce(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("count_pending_mode_migrations", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("noop", "success")))
}

func TestScheduler_StartStop(t *testing.T) {
	ran := make(chan struct{}, 1)
	scheduler := NewScheduler(nil)
	scheduler.AddJob("signal", pendingMigrationsInterval, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	scheduler.Start(context.Background())
	<-ran
	scheduler.Stop()

	// stopping twice is harmless
	scheduler.Stop()
}
