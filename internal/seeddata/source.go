// internal/seeddata/source.go
package seeddata

import (
	"context"
	"database/sql"
	"fmt"

	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/validation"
	"prospect-dashboard/internal/prospects"
)

const (
	SourceBuiltin  = "builtin"
	SourceYAML     = "yaml"
	SourcePostgres = "postgres"
)

// Source loads the pools a generator draws from.
type Source interface {
	Name() string
	Load(ctx context.Context) (*prospects.Pools, error)
}

// New picks the source named by cfg.Source. db is only required for the
// postgres source.
func New(cfg config.GeneratorConfig, db *sql.DB, log logger.Logger) (Source, error) {
	switch cfg.Source {
	case "", SourceBuiltin:
		return NewBuiltin(), nil
	case SourceYAML:
		return NewYAMLFile(cfg.PoolsFile, log), nil
	case SourcePostgres:
		if db == nil {
			return nil, errors.NewSeedSourceFailedError(SourcePostgres, fmt.Errorf("postgres is not connected"))
		}
		return NewPostgres(db, cfg.SeedTable, log), nil
	default:
		return nil, errors.NewSeedSourceFailedError(cfg.Source, fmt.Errorf("unknown seed source"))
	}
}

// LoadPools loads from src and applies the generator options that change the
// pools, currently the Pennsylvania opt-in.
func LoadPools(ctx context.Context, src Source, cfg config.GeneratorConfig) (*prospects.Pools, error) {
	pools, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.IncludePennsylvania {
		pools = pools.WithPennsylvania()
	}
	return pools, nil
}

type builtin struct{}

// NewBuiltin returns the compiled-in tri-state pools.
func NewBuiltin() Source { return builtin{} }

func (builtin) Name() string { return SourceBuiltin }

func (builtin) Load(context.Context) (*prospects.Pools, error) {
	return prospects.DefaultPools(), nil
}

// sanitizeContacts clears contact fields that fail validation so the
// generator synthesizes them instead.
func sanitizeContacts(seeds []prospects.SeedProfile, log logger.Logger) {
	for i := range seeds {
		s := &seeds[i]
		var dropped []string
		if s.Email != "" && !validation.ValidateEmail(s.Email) {
			s.Email = ""
			dropped = append(dropped, "email")
		}
		if s.Phone != "" && !validation.ValidatePhone(s.Phone) {
			s.Phone = ""
			dropped = append(dropped, "phone")
		}
		if s.Website != "" && !validation.ValidateURL(s.Website) {
			s.Website = ""
			dropped = append(dropped, "website")
		}
		if len(dropped) > 0 {
			log.Warn("Dropping invalid seed contact fields", map[string]interface{}{
				"name":   s.Name,
				"fields": dropped,
			})
		}
	}
}
