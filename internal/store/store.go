// internal/store/store.go
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/metrics"
	"prospect-dashboard/internal/models"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Store keeps generated snapshots. Snapshots are immutable once saved.
type Store interface {
	Save(ctx context.Context, snap *models.Snapshot) error
	Get(ctx context.Context, id string) (*models.Snapshot, error)
	// Latest returns the most recently saved snapshot.
	Latest(ctx context.Context) (*models.Snapshot, error)
}

// NewSnapshot wraps prospects in a snapshot with a fresh id.
func NewSnapshot(mode models.GenerationMode, prospects []models.Prospect, generatedAt time.Time) *models.Snapshot {
	return &models.Snapshot{
		ID:          uuid.NewString(),
		Mode:        mode,
		GeneratedAt: generatedAt.UTC(),
		Prospects:   prospects,
	}
}

// New builds the store named by cfg.Backend. rdb is required for redis.
func New(cfg config.StoreConfig, rdb redis.Cmdable) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(0), nil
	case BackendRedis:
		if rdb == nil {
			return nil, errors.NewSnapshotStoreFailedError("init", errRedisNotConnected)
		}
		return NewRedis(rdb, cfg.KeyPrefix, time.Duration(cfg.TTL)*time.Second), nil
	default:
		return nil, errors.NewSnapshotStoreFailedError("init", errUnknownBackend)
	}
}

func observe(backend, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if std, ok := errors.As(err); ok && std.Code == errors.ErrCodeSnapshotNotFound {
			result = "not_found"
		}
	}
	metrics.SnapshotOperations.WithLabelValues(backend, operation, result).Inc()
}
