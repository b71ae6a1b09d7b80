// internal/workers/prospects/calculate-prospect-stats/handler_test.go
package calculateprospectstats

import (
	"context"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/observability"
	"prospect-dashboard/internal/models"
	"prospect-dashboard/internal/prospects"
	"prospect-dashboard/internal/workers/jobs"
	"prospect-dashboard/internal/workers/jobs/jobstest"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T, obs *observability.Observability) (*Handler, *models.Snapshot) {
	svc := jobstest.Service(t)
	snap, err := svc.Generate(context.Background(), models.ModeSynthetic, 50)
	require.NoError(t, err)
	cfg := &Config{Enabled: true, MaxJobsActive: 5, Timeout: 5 * time.Second}
	return NewHandler(cfg, svc, jobstest.Activity(t, TaskType), obs, logger.NewTestLogger(t)), snap
}

func createTestObservability(t *testing.T) (*observability.Observability, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	obs := observability.New(
		config.ObservabilityConfig{ServiceName: "stats-test", TraceSampling: 1.0},
		logger.NewTestLogger(t),
		observability.WithRegisterer(promclient.NewRegistry()),
		observability.WithSpanProcessor(recorder),
		observability.WithoutGlobal(),
	)
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })
	return obs, recorder
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	handler, snap := createTestHandler(t, nil)

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, snap.ID, output.SnapshotID)
	assert.Equal(t, prospects.Summarize(snap.Prospects), output.Stats)
	assert.Equal(t, 50, output.Stats.TotalProspects)
}

func TestHandler_Execute_Filtered(t *testing.T) {
	handler, snap := createTestHandler(t, nil)
	criteria := &jobs.Criteria{Statuses: []string{"interested", "meeting_scheduled"}}

	output, err := handler.Execute(context.Background(), &Input{SnapshotID: snap.ID, Criteria: criteria})
	require.NoError(t, err)

	want := prospects.Summarize(prospects.Filter(snap.Prospects, criteria.FilterCriteria()))
	assert.Equal(t, want, output.Stats)
	assert.Zero(t, output.Stats.ByStatus["new"])
}

func TestHandler_Execute_UnknownSnapshot(t *testing.T) {
	handler, _ := createTestHandler(t, nil)

	_, err := handler.Execute(context.Background(), &Input{SnapshotID: "missing"})
	assert.Equal(t, errors.ErrCodeSnapshotNotFound, errors.Normalize(err).Code)
}

// ==========================
// Job Handling Tests
// ==========================

func TestHandler_Handle_RecordsSpans(t *testing.T) {
	obs, recorder := createTestObservability(t)
	handler, _ := createTestHandler(t, obs)
	client := jobstest.NewClient()

	handler.Handle(client, jobstest.Job(31, TaskType, map[string]interface{}{}))

	require.Len(t, client.Gateway.Completed, 1)
	vars, err := client.Gateway.CompletedVariables(0)
	require.NoError(t, err)
	stats := vars["stats"].(map[string]interface{})
	assert.Equal(t, float64(50), stats["totalProspects"])

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "prospects.summarize", spans[0].Name())
	assert.Equal(t, TaskType, spans[1].Name())
}

func TestHandler_Handle_NoSnapshot(t *testing.T) {
	svc := jobstest.Service(t)
	cfg := &Config{Enabled: true, Timeout: time.Second}
	handler := NewHandler(cfg, svc, jobstest.Activity(t, TaskType), nil, logger.NewTestLogger(t))
	client := jobstest.NewClient()

	handler.Handle(client, jobstest.Job(32, TaskType, map[string]interface{}{}))

	require.Len(t, client.Gateway.Thrown, 1)
	assert.Equal(t, "SNAPSHOT_NOT_FOUND", client.Gateway.Thrown[0].ErrorCode)
}
