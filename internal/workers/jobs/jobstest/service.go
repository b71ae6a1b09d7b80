// internal/workers/jobs/jobstest/service.go
package jobstest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/prospects"
	"prospect-dashboard/internal/snapshots"
	"prospect-dashboard/internal/store"
	"prospect-dashboard/pkg/registry"
)

// Now is the clock every test service reports.
var Now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// RegistryPath is the activity registry relative to a worker package.
const RegistryPath = "../../../../configs/activity-registry.json"

// Service returns a deterministic snapshot service over an in-memory store.
func Service(t *testing.T) *snapshots.Service {
	t.Helper()
	clock := func() time.Time { return Now }
	gen, err := prospects.NewGenerator(prospects.DefaultPools(),
		prospects.WithRand(prospects.NewRand(7)),
		prospects.WithClock(clock),
	)
	require.NoError(t, err)
	return snapshots.NewService(gen, store.NewMemory(0), logger.NewTestLogger(t), snapshots.WithClock(clock))
}

// Activity loads the registered activity for taskType.
func Activity(t *testing.T, taskType string) *registry.Activity {
	t.Helper()
	reg, err := registry.LoadRegistry(RegistryPath)
	require.NoError(t, err)
	activity, err := reg.Activity(taskType)
	require.NoError(t, err)
	return activity
}
