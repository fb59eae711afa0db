// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes used as the "outcome" label.
const (
	OutcomeSubmitted = "submitted"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "in_progress"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "case_submissions_total",
			Help: "Total number of submit attempts by outcome",
		},
		[]string{"outcome"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "case_validation_failures_total",
			Help: "Total number of field validation failures on submit",
		},
		[]string{"field"},
	)

	SinkRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "case_sink_request_duration_seconds",
			Help:    "Duration of requests to the form sink in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	SubmissionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "case_submissions_in_flight",
			Help: "Number of submissions waiting on the form sink",
		},
	)

	FormMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "case_form_mutations_total",
			Help: "Total number of form state mutations by operation",
		},
		[]string{"operation"},
	)
)
