// internal/common/database/backends.go
package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/logger"
)

const pingTimeout = 5 * time.Second

// Backend is an optional external dependency that can report readiness.
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Close() error
}

// Backends holds the connections enabled in configuration. Disabled
// backends are nil.
type Backends struct {
	Postgres      *PostgresClient
	Redis         *RedisClient
	Elasticsearch *ElasticsearchClient

	logger logger.Logger
}

// Connect opens every enabled backend. Connections are created lazily by
// the drivers; readiness is reported by Check.
func Connect(cfg config.DatabaseConfig, log logger.Logger) (*Backends, error) {
	b := &Backends{logger: log}

	if cfg.Postgres.Enabled {
		pg, err := NewPostgres(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		b.Postgres = pg
	}

	if cfg.Redis.Enabled {
		rdb, err := NewRedis(cfg.Redis)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Redis = rdb
	}

	if cfg.Elasticsearch.Enabled {
		es, err := NewElasticsearch(cfg.Elasticsearch)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Elasticsearch = es
	}

	log.Info("backends configured", map[string]interface{}{
		"postgres":      b.Postgres != nil,
		"redis":         b.Redis != nil,
		"elasticsearch": b.Elasticsearch != nil,
	})
	return b, nil
}

// Enabled returns the configured backends.
func (b *Backends) Enabled() []Backend {
	var out []Backend
	if b.Postgres != nil {
		out = append(out, b.Postgres)
	}
	if b.Redis != nil {
		out = append(out, b.Redis)
	}
	if b.Elasticsearch != nil {
		out = append(out, b.Elasticsearch)
	}
	return out
}

// Check pings every enabled backend. The map holds "ok" or the error text
// per backend name; the error is non-nil when any ping failed.
func (b *Backends) Check(ctx context.Context) (map[string]string, error) {
	return CheckAll(ctx, b.Enabled()...)
}

// CheckAll pings backends with a per-backend timeout.
func CheckAll(ctx context.Context, backends ...Backend) (map[string]string, error) {
	results := make(map[string]string, len(backends))
	var failed []string
	for _, backend := range backends {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := backend.Ping(pingCtx)
		cancel()
		if err != nil {
			results[backend.Name()] = err.Error()
			failed = append(failed, backend.Name())
			continue
		}
		results[backend.Name()] = "ok"
	}
	if len(failed) > 0 {
		sort.Strings(failed)
		return results, fmt.Errorf("backends not ready: %v", failed)
	}
	return results, nil
}

// Close releases every open connection.
func (b *Backends) Close() error {
	var errs []error
	for _, backend := range b.Enabled() {
		if err := backend.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", backend.Name(), err))
		}
	}
	return errors.Join(errs...)
}
