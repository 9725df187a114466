package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// feedback pipeline and the crowd-signal resolvers.
type Metrics struct {
	FeedbackConsumed prometheus.Counter
	FeedbackErrors   prometheus.Counter
	PointsAwarded    prometheus.Counter
	BadgesUnlocked   prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize     prometheus.Histogram
	ApplyDuration prometheus.Histogram

	// Reference-data metrics.
	FestivalCache  *prometheus.CounterVec // labels: result={hit,miss}
	FestivalLoaded prometheus.Gauge       // number of festivals in the reference set
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedbackConsumed,
		m.FeedbackErrors,
		m.PointsAwarded,
		m.BadgesUnlocked,
		m.PipelineRunning,
		m.BatchSize,
		m.ApplyDuration,
		m.FestivalCache,
		m.FestivalLoaded,
	)
	return m
}

// NewMetricsForTesting creates Metrics backed by a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedbackConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crowdpulse",
			Name:      "feedback_consumed_total",
			Help:      "Total feedback events read from the feedback topic.",
		}),
		FeedbackErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crowdpulse",
			Name:      "feedback_errors_total",
			Help:      "Total feedback events that failed to apply.",
		}),
		PointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crowdpulse",
			Name:      "points_awarded_total",
			Help:      "Total engagement points credited to users.",
		}),
		BadgesUnlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crowdpulse",
			Name:      "badges_unlocked_total",
			Help:      "Total badge unlocks across all users.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crowdpulse",
			Name:      "pipeline_running",
			Help:      "1 when the feedback pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crowdpulse",
			Name:      "batch_size",
			Help:      "Number of feedback events per extracted batch.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		ApplyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crowdpulse",
			Name:      "apply_duration_seconds",
			Help:      "Duration of a complete batch apply cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		FestivalCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crowdpulse",
			Name:      "festival_cache_total",
			Help:      "Festival active-date cache lookups by result.",
		}, []string{"result"}),
		FestivalLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crowdpulse",
			Name:      "festival_reference_records",
			Help:      "Number of festival records in the loaded reference set.",
		}),
	}
}
