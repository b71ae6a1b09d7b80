// internal/bootstrap/bootstrap.go

// Package bootstrap wires the snapshot service from configuration for the
// server and the CLI.
package bootstrap

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"

	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/database"
	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/prospects"
	"prospect-dashboard/internal/search"
	"prospect-dashboard/internal/seeddata"
	"prospect-dashboard/internal/snapshots"
	"prospect-dashboard/internal/store"
)

// Generator loads pools from the configured seed source. A zero seed draws
// from a time seeded source.
func Generator(ctx context.Context, cfg config.GeneratorConfig, db *sql.DB, log logger.Logger) (*prospects.Generator, error) {
	src, err := seeddata.New(cfg, db, log)
	if err != nil {
		return nil, err
	}
	pools, err := seeddata.LoadPools(ctx, src, cfg)
	if err != nil {
		return nil, err
	}

	rnd := prospects.NewTimeSeededRand()
	if cfg.Seed != 0 {
		rnd = prospects.NewRand(cfg.Seed)
	}
	gen, err := prospects.NewGenerator(pools, prospects.WithRand(rnd))
	if err != nil {
		return nil, errors.NewSeedSourceFailedError(src.Name(), err)
	}

	log.Info("Generator ready", map[string]interface{}{
		"source":              src.Name(),
		"seeded":              cfg.Seed != 0,
		"includePennsylvania": cfg.IncludePennsylvania,
	})
	return gen, nil
}

// Service builds the snapshot service over the enabled backends.
func Service(ctx context.Context, cfg *config.Config, b *database.Backends, log logger.Logger) (*snapshots.Service, error) {
	var db *sql.DB
	if b.Postgres != nil {
		db = b.Postgres.DB
	}
	gen, err := Generator(ctx, cfg.Generator, db, log)
	if err != nil {
		return nil, err
	}

	var rdb redis.Cmdable
	if b.Redis != nil {
		rdb = b.Redis.Client
	}
	st, err := store.New(cfg.Store, rdb)
	if err != nil {
		return nil, err
	}

	var opts []snapshots.Option
	if b.Elasticsearch != nil {
		ix := search.NewIndexer(b.Elasticsearch.Client, cfg.Database.Elasticsearch.Index, log)
		if err := ix.EnsureIndex(ctx); err != nil {
			log.Warn("Failed to ensure search index", map[string]interface{}{
				"index": cfg.Database.Elasticsearch.Index,
				"error": err.Error(),
			})
		}
		opts = append(opts, snapshots.WithIndexer(ix))
	}

	return snapshots.NewService(gen, st, log, opts...), nil
}
