package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "punchclock"

// Metrics holds the attendance engine's collectors.
type Metrics struct {
	PunchesRecorded         *prometheus.CounterVec
	PunchesRejected         *prometheus.CounterVec
	ModeFallbacks           prometheus.Counter
	SummariesComputed       prometheus.Counter
	SummaryDuration         prometheus.Histogram
	SuspectIntervals        prometheus.Counter
	DuplicateJustifications prometheus.Counter
	PendingModeMigrations   *prometheus.GaugeVec
	JobRuns                 *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Passing prometheus.NewRegistry() keeps
// tests isolated from the global registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		PunchesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "punches_recorded_total",
			Help:      "Punch events recorded, by tracking mode and kind.",
		}, []string{"mode", "kind"}),
		PunchesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "punches_rejected_total",
			Help:      "Punch submissions rejected, by reason.",
		}, []string{"reason"}),
		ModeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracking_mode_fallbacks_total",
			Help:      "Projects resolved with the legacy flow because their mode is unknown.",
		}),
		SummariesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "monthly_summaries_total",
			Help:      "Monthly attendance summaries computed.",
		}),
		SummaryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "monthly_summary_duration_seconds",
			Help:      "Time to load and aggregate one monthly summary.",
			Buckets:   prometheus.DefBuckets,
		}),
		SuspectIntervals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suspect_intervals_total",
			Help:      "Work intervals whose exit does not come after the entry.",
		}),
		DuplicateJustifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_justifications_total",
			Help:      "Days found with more than one justification.",
		}),
		PendingModeMigrations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_mode_migrations",
			Help:      "Projects still configured with a retired tracking mode.",
		}, []string{"mode"}),
		JobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Background job runs, by job and result.",
		}, []string{"job", "result"}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.PunchesRecorded,
		m.PunchesRejected,
		m.ModeFallbacks,
		m.SummariesComputed,
		m.SummaryDuration,
		m.SuspectIntervals,
		m.DuplicateJustifications,
		m.PendingModeMigrations,
		m.JobRuns,
	)

	return m
}

// NewWithRuntime is New plus the Go runtime and process collectors.
func NewWithRuntime() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
