// Package metrics exposes Prometheus instrumentation for the matching
// and feedback pipelines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors shared across the engine. Best-effort
// side effects (similarity search calls, feedback sink writes) report
// their failures here instead of propagating them to callers.
type Metrics struct {
	SearchFailures   prometheus.Counter
	SinkFailures     prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	CandidatesFound  prometheus.Histogram
	SuggestLatency   prometheus.Histogram
	FeedbackRecorded *prometheus.CounterVec
}

// New creates the metric collectors and registers them on the given
// registerer. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SearchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "founderlink_search_failures_total",
			Help: "Similarity search calls that failed or timed out.",
		}),
		SinkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "founderlink_feedback_sink_failures_total",
			Help: "Feedback sink writes that failed or timed out.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "founderlink_suggestion_cache_hits_total",
			Help: "Suggestion requests served from cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "founderlink_suggestion_cache_misses_total",
			Help: "Suggestion requests that missed the cache.",
		}),
		CandidatesFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "founderlink_candidates_per_request",
			Help:    "Deduplicated candidates aggregated per suggestion request.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
		SuggestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "founderlink_suggest_duration_seconds",
			Help:    "End-to-end suggestion request latency.",
			Buckets: prometheus.DefBuckets,
		}),
		FeedbackRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "founderlink_feedback_recorded_total",
			Help: "Feedback scores emitted, by lifecycle stage.",
		}, []string{"stage"}),
	}

	reg.MustRegister(
		m.SearchFailures,
		m.SinkFailures,
		m.CacheHits,
		m.CacheMisses,
		m.CandidatesFound,
		m.SuggestLatency,
		m.FeedbackRecorded,
	)

	return m
}

// NewNop returns metrics backed by an unregistered registry, for use in
// tests and as a constructor default.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
