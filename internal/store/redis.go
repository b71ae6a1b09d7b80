// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/models"
)

const DefaultKeyPrefix = "prospects:snapshot"

// Redis stores snapshots as JSON under <prefix>:<id> with a <prefix>:latest
// pointer to the newest id.
type Redis struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

var _ Store = (*Redis)(nil)

// NewRedis builds a store over client. ttl 0 keeps keys forever.
func NewRedis(client redis.Cmdable, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) snapshotKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *Redis) latestKey() string {
	return r.prefix + ":latest"
}

func (r *Redis) Save(ctx context.Context, snap *models.Snapshot) (err error) {
	defer func() { observe(BackendRedis, "save", err) }()
	if snap == nil || snap.ID == "" {
		return errors.NewSnapshotStoreFailedError("save", errNoSnapshot)
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return errors.NewSnapshotStoreFailedError("save", fmt.Errorf("marshal snapshot: %w", err))
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.snapshotKey(snap.ID), payload, r.ttl)
		pipe.Set(ctx, r.latestKey(), snap.ID, r.ttl)
		return nil
	})
	if err != nil {
		return errors.NewSnapshotStoreFailedError("save", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, id string) (_ *models.Snapshot, err error) {
	defer func() { observe(BackendRedis, "get", err) }()
	return r.get(ctx, id)
}

func (r *Redis) get(ctx context.Context, id string) (*models.Snapshot, error) {
	raw, err := r.client.Get(ctx, r.snapshotKey(id)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.NewSnapshotNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewSnapshotStoreFailedError("get", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.NewSnapshotStoreFailedError("get", fmt.Errorf("decode snapshot %s: %w", id, err))
	}
	return &snap, nil
}

func (r *Redis) Latest(ctx context.Context) (_ *models.Snapshot, err error) {
	defer func() { observe(BackendRedis, "latest", err) }()

	id, err := r.client.Get(ctx, r.latestKey()).Result()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.NewSnapshotNotFoundError("latest")
	}
	if err != nil {
		return nil, errors.NewSnapshotStoreFailedError("latest", err)
	}
	return r.get(ctx, id)
}
