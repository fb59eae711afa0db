package observability

import (
	"context"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs := New("case-test",
		WithRegisterer(promclient.NewRegistry()),
		WithSpanProcessor(recorder),
		WithoutGlobal(),
	)
	defer func() { _ = obs.Shutdown() }()

	_, span := obs.StartSpan(context.Background(), "case.submit", attribute.Int("months", 1))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "case.submit", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int("months", 1))
}

func TestRecordSubmission_ExportsMetrics(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := New("case-test", WithRegisterer(reg), WithoutGlobal())
	defer func() { _ = obs.Shutdown() }()

	obs.RecordSubmission(context.Background(), "submitted", 120*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	// Instrument names must already be valid Prometheus names and must not
	// collide with the promauto collectors in internal/common/metrics.
	assert.True(t, names["case_submit_attempts_total"], "got %v", names)
	assert.True(t, names["case_submit_duration_milliseconds"], "got %v", names)
	for name := range names {
		assert.NotContains(t, name, ".")
	}
	assert.False(t, names["case_submissions_total"])
}

func TestZeroObservability_IsSafe(t *testing.T) {
	var obs Observability

	ctx, span := obs.StartSpan(context.Background(), "noop")
	span.End()
	obs.RecordSubmission(ctx, "failed", time.Second)
	assert.NoError(t, obs.Shutdown())
}
