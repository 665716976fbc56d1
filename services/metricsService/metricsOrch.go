package metricsService

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements the pick and grading recorders on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	PicksGenerated   *prometheus.CounterVec
	ParlaysGenerated *prometheus.CounterVec
	ProviderErrors   *prometheus.CounterVec
	LockedPicks      *prometheus.CounterVec
	XPChange         *prometheus.CounterVec
	JobDuration      *prometheus.HistogramVec
	JobRuns          *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		PicksGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "black_ledger_picks_generated_total",
				Help: "Single-game picks saved",
			},
			[]string{"sport", "tier"},
		),
		ParlaysGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "black_ledger_parlays_generated_total",
				Help: "Parlays saved",
			},
			[]string{"sport", "tier"},
		),
		ProviderErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "black_ledger_provider_errors_total",
				Help: "Sports skipped because the odds provider failed",
			},
			[]string{"sport"},
		),
		LockedPicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "black_ledger_locked_picks_graded_total",
				Help: "Locked picks graded",
			},
			[]string{"result"},
		),
		XPChange: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "black_ledger_xp_total",
				Help: "Absolute XP moved by grading",
			},
			[]string{"direction"},
		),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "black_ledger_job_duration_seconds",
				Help:    "Scheduled job wall time",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
			},
			[]string{"job"},
		),
		JobRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "black_ledger_job_runs_total",
				Help: "Scheduled job runs by outcome",
			},
			[]string{"job", "status"},
		),
	}

	registry.MustRegister(
		m.PicksGenerated,
		m.ParlaysGenerated,
		m.ProviderErrors,
		m.LockedPicks,
		m.XPChange,
		m.JobDuration,
		m.JobRuns,
		collectors.NewGoCollector(),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) PickGenerated(sport string, tier string) {
	m.PicksGenerated.WithLabelValues(sport, tier).Inc()
}

func (m *Metrics) ParlayGenerated(sport string, tier string) {
	m.ParlaysGenerated.WithLabelValues(sport, tier).Inc()
}

func (m *Metrics) ProviderError(sport string) {
	m.ProviderErrors.WithLabelValues(sport).Inc()
}

func (m *Metrics) LockedPickGraded(result string) {
	m.LockedPicks.WithLabelValues(result).Inc()
}

// XPAwarded splits delta into the awarded and penalty series since counters
// only grow.
func (m *Metrics) XPAwarded(delta int) {
	switch {
	case delta > 0:
		m.XPChange.WithLabelValues("awarded").Add(float64(delta))
	case delta < 0:
		m.XPChange.WithLabelValues("penalty").Add(float64(-delta))
	}
}

// ObserveJob records one run of job that started at start.
func (m *Metrics) ObserveJob(job string, start time.Time, err error) {
	m.JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.JobRuns.WithLabelValues(job, status).Inc()
}
