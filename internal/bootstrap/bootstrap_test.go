// internal/bootstrap/bootstrap_test.go
package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/database"
	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/models"
)

func baseConfig() *config.Config {
	return &config.Config{
		Generator: config.GeneratorConfig{Mode: "synthetic", Count: 20, Seed: 42, Source: "builtin"},
		Store:     config.StoreConfig{Backend: "memory"},
	}
}

func TestGenerator_SeededIsDeterministic(t *testing.T) {
	cfg := baseConfig().Generator
	log := logger.NewTestLogger(t)

	a, err := Generator(context.Background(), cfg, nil, log)
	require.NoError(t, err)
	b, err := Generator(context.Background(), cfg, nil, log)
	require.NoError(t, err)

	first, err := a.Generate(models.ModeSynthetic, 10)
	require.NoError(t, err)
	second, err := b.Generate(models.ModeSynthetic, 10)
	require.NoError(t, err)
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].FitScore, second[i].FitScore)
	}
}

func TestGenerator_YAMLSource(t *testing.T) {
	cfg := baseConfig().Generator
	cfg.Source = "yaml"
	cfg.PoolsFile = "../../configs/pools.yaml"

	gen, err := Generator(context.Background(), cfg, nil, logger.NewTestLogger(t))
	require.NoError(t, err)

	records, err := gen.Generate(models.ModeSeed, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.ElementsMatch(t, []string{"Sarah Chen", "Marcus Webb"}, []string{records[0].Name, records[1].Name})
}

func TestGenerator_PostgresWithoutConnection(t *testing.T) {
	cfg := baseConfig().Generator
	cfg.Source = "postgres"

	_, err := Generator(context.Background(), cfg, nil, logger.NewTestLogger(t))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSeedSourceFailed, errors.Normalize(err).Code)
}

func TestService_Memory(t *testing.T) {
	svc, err := Service(context.Background(), baseConfig(), &database.Backends{}, logger.NewTestLogger(t))
	require.NoError(t, err)

	snap, err := svc.Generate(context.Background(), models.ModeSynthetic, 20)
	require.NoError(t, err)
	latest, err := svc.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, snap.ID, latest.ID)
}

func TestService_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig()
	cfg.Store.Backend = "redis"
	cfg.Database.Redis = config.RedisConfig{Enabled: true, Address: mr.Addr()}

	backends, err := database.Connect(cfg.Database, logger.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = backends.Close() })

	svc, err := Service(context.Background(), cfg, backends, logger.NewTestLogger(t))
	require.NoError(t, err)

	snap, err := svc.Generate(context.Background(), models.ModeSeed, 0)
	require.NoError(t, err)
	assert.True(t, mr.Exists("prospects:snapshot:"+snap.ID))
}

func TestService_RedisNotConnected(t *testing.T) {
	cfg := baseConfig()
	cfg.Store.Backend = "redis"

	_, err := Service(context.Background(), cfg, &database.Backends{}, logger.NewTestLogger(t))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSnapshotStoreFailed, errors.Normalize(err).Code)
}
