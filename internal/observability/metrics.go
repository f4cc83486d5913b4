// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "author_scout"

// Resolution outcomes used as the outcome label of AuthorResolutions.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
)

// Metrics holds the counters and histograms for ranking runs.
type Metrics struct {
	// RunsStarted counts ranking runs, including those rejected by
	// validation or keyword parsing.
	RunsStarted prometheus.Counter

	// RunsFailed counts runs that ended in an error, labeled by error kind
	// (validation, parse, fetch, canceled).
	RunsFailed *prometheus.CounterVec

	// RunDuration observes end-to-end run duration in seconds.
	RunDuration prometheus.Histogram

	PapersFetched prometheus.Counter
	PapersMatched prometheus.Counter

	// AuthorResolutions counts resolution attempts by outcome.
	AuthorResolutions *prometheus.CounterVec

	// RecordsRanked counts author records emitted after filtering.
	RecordsRanked prometheus.Counter
}

// NewMetrics creates and registers all metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RunsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_started_total",
			Help:      "Total number of ranking runs started",
		}),
		RunsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_failed_total",
			Help:      "Total number of ranking runs that failed, by error kind",
		}, []string{"kind"}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of ranking runs in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		PapersFetched: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "papers_fetched_total",
			Help:      "Total number of papers returned by arXiv",
		}),
		PapersMatched: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "papers_matched_total",
			Help:      "Total number of papers that matched the keyword filter",
		}),
		AuthorResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "author_resolutions_total",
			Help:      "Total number of Semantic Scholar author resolutions, by outcome",
		}, []string{"outcome"}),
		RecordsRanked: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "records_ranked_total",
			Help:      "Total number of author records emitted",
		}),
	}
}

// RecordRunStarted increments RunsStarted.
func (m *Metrics) RecordRunStarted() {
	if m == nil {
		return
	}
	m.RunsStarted.Inc()
}

// RecordRunCompleted records the counts and duration of a successful run.
func (m *Metrics) RecordRunCompleted(fetched, matched, ranked int, d time.Duration) {
	if m == nil {
		return
	}
	m.PapersFetched.Add(float64(fetched))
	m.PapersMatched.Add(float64(matched))
	m.RecordsRanked.Add(float64(ranked))
	m.RunDuration.Observe(d.Seconds())
}

// RecordRunFailed counts a failed run under kind.
func (m *Metrics) RecordRunFailed(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.RunsFailed.WithLabelValues(kind).Inc()
	m.RunDuration.Observe(d.Seconds())
}

// ObserveResolution counts one author resolution attempt.
func (m *Metrics) ObserveResolution(outcome string) {
	if m == nil {
		return
	}
	m.AuthorResolutions.WithLabelValues(outcome).Inc()
}
