// internal/store/store_test.go
package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/metrics"
	"prospect-dashboard/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var generatedAt = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func createSnapshot(count int) *models.Snapshot {
	prospects := make([]models.Prospect, count)
	for i := range prospects {
		prospects[i] = models.Prospect{
			ID:       i + 1,
			Name:     fmt.Sprintf("Investor %d", i+1),
			Org:      "Greycroft",
			Location: models.Location{City: "New York", State: "NY", Country: "US"},
			Sectors:  []string{"FinTech"},
			FitScore: 90 - i,
			Status:   models.StatusNew,
			Tags:     []string{},
		}
	}
	return NewSnapshot(models.ModeSynthetic, prospects, generatedAt)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	std, ok := errors.As(err)
	require.True(t, ok, "expected StandardError, got %v", err)
	assert.Equal(t, errors.ErrCodeSnapshotNotFound, std.Code)
}

func TestNewSnapshot(t *testing.T) {
	snap := createSnapshot(2)
	_, err := uuid.Parse(snap.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ModeSynthetic, snap.Mode)
	assert.Equal(t, generatedAt, snap.GeneratedAt)
	assert.NotEqual(t, snap.ID, createSnapshot(2).ID)
}

func TestNew(t *testing.T) {
	s, err := New(config.StoreConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = New(config.StoreConfig{Backend: BackendRedis}, nil)
	assert.Error(t, err)

	client, _ := redismock.NewClientMock()
	s, err = New(config.StoreConfig{Backend: BackendRedis, KeyPrefix: "demo", TTL: 60}, client)
	require.NoError(t, err)
	assert.Equal(t, "demo:abc", s.(*Redis).snapshotKey("abc"))
	assert.Equal(t, time.Minute, s.(*Redis).ttl)

	_, err = New(config.StoreConfig{Backend: "etcd"}, nil)
	assert.Error(t, err)
}

// ==========================
// Memory store
// ==========================

func TestMemory_SaveGetLatest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	_, err := m.Latest(ctx)
	assertNotFound(t, err)

	first, second := createSnapshot(3), createSnapshot(1)
	require.NoError(t, m.Save(ctx, first))
	require.NoError(t, m.Save(ctx, second))

	got, err := m.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Same(t, first, got)

	latest, err := m.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	_, err = m.Get(ctx, "missing")
	assertNotFound(t, err)
}

func TestMemory_ResaveBecomesLatest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	first, second := createSnapshot(1), createSnapshot(1)
	require.NoError(t, m.Save(ctx, first))
	require.NoError(t, m.Save(ctx, second))
	require.NoError(t, m.Save(ctx, first))

	latest, err := m.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
	assert.Equal(t, 2, m.Len())
}

func TestMemory_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)
	snaps := []*models.Snapshot{createSnapshot(1), createSnapshot(1), createSnapshot(1)}
	for _, s := range snaps {
		require.NoError(t, m.Save(ctx, s))
	}

	assert.Equal(t, 2, m.Len())
	_, err := m.Get(ctx, snaps[0].ID)
	assertNotFound(t, err)
	_, err = m.Get(ctx, snaps[2].ID)
	assert.NoError(t, err)
}

func TestMemory_RejectsNil(t *testing.T) {
	err := NewMemory(0).Save(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSnapshotStoreFailed, errors.Normalize(err).Code)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(50)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := createSnapshot(2)
			assert.NoError(t, m.Save(ctx, snap))
			_, err := m.Get(ctx, snap.ID)
			assert.NoError(t, err)
			_, err = m.Latest(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, m.Len())
}

func TestMemory_RecordsMetrics(t *testing.T) {
	counter := metrics.SnapshotOperations.WithLabelValues(BackendMemory, "get", "not_found")
	before := testutil.ToFloat64(counter)
	_, _ = NewMemory(0).Get(context.Background(), "missing")
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

// ==========================
// Redis store
// ==========================

func newMiniredisStore(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "", ttl), mr
}

func TestRedis_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniredisStore(t, 0)

	_, err := s.Latest(ctx)
	assertNotFound(t, err)

	snap := createSnapshot(4)
	contacted := generatedAt.Add(-48 * time.Hour)
	snap.Prospects[1].Status = models.StatusContacted
	snap.Prospects[1].LastContactedAt = &contacted
	require.NoError(t, s.Save(ctx, snap))

	assert.True(t, mr.Exists("prospects:snapshot:"+snap.ID))
	latestID, err := mr.Get("prospects:snapshot:latest")
	require.NoError(t, err)
	assert.Equal(t, snap.ID, latestID)

	got, err := s.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.Mode, got.Mode)
	assert.True(t, snap.GeneratedAt.Equal(got.GeneratedAt))
	require.Len(t, got.Prospects, 4)
	assert.Equal(t, snap.Prospects[0].Name, got.Prospects[0].Name)
	require.NotNil(t, got.Prospects[1].LastContactedAt)
	assert.True(t, contacted.Equal(*got.Prospects[1].LastContactedAt))
	assert.Nil(t, got.Prospects[0].LastContactedAt)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, latest.ID)
}

func TestRedis_TTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniredisStore(t, time.Hour)

	snap := createSnapshot(1)
	require.NoError(t, s.Save(ctx, snap))
	assert.Equal(t, time.Hour, mr.TTL("prospects:snapshot:"+snap.ID))
	assert.Equal(t, time.Hour, mr.TTL("prospects:snapshot:latest"))

	mr.FastForward(2 * time.Hour)
	_, err := s.Get(ctx, snap.ID)
	assertNotFound(t, err)
}

func TestRedis_CorruptPayload(t *testing.T) {
	s, mr := newMiniredisStore(t, 0)
	require.NoError(t, mr.Set("prospects:snapshot:broken", "{not json"))

	_, err := s.Get(context.Background(), "broken")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSnapshotStoreFailed, errors.Normalize(err).Code)
}

func TestRedis_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("get failure", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("prospects:snapshot:abc").SetErr(fmt.Errorf("connection refused"))

		_, err := NewRedis(client, "", 0).Get(ctx, "abc")
		require.Error(t, err)
		std := errors.Normalize(err)
		assert.Equal(t, errors.ErrCodeSnapshotStoreFailed, std.Code)
		assert.True(t, std.Retryable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("latest pointer missing", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("prospects:snapshot:latest").RedisNil()

		_, err := NewRedis(client, "", 0).Latest(ctx)
		assertNotFound(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("latest points at expired snapshot", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("prospects:snapshot:latest").SetVal("gone")
		mock.ExpectGet("prospects:snapshot:gone").RedisNil()

		_, err := NewRedis(client, "", 0).Latest(ctx)
		assertNotFound(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("save failure", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		defer client.Close()
		mr.Close()

		err = NewRedis(client, "", 0).Save(ctx, createSnapshot(1))
		require.Error(t, err)
		std := errors.Normalize(err)
		assert.Equal(t, errors.ErrCodeSnapshotStoreFailed, std.Code)
		assert.Equal(t, "save", std.Metadata["operation"])
	})
}
