// internal/seeddata/postgres.go
package seeddata

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/prospects"
)

const DefaultSeedTable = "seed_investors"

var seedColumns = []string{
	"name", "org", "city", "state", "country",
	"sectors", "stage_preferences", "status",
	"email", "linkedin", "website", "phone", "notes",
}

// Postgres reads seed profiles from a table; every other pool stays built in.
type Postgres struct {
	db     *sql.DB
	table  string
	logger logger.Logger
}

func NewPostgres(db *sql.DB, table string, log logger.Logger) *Postgres {
	if table == "" {
		table = DefaultSeedTable
	}
	return &Postgres{db: db, table: table, logger: log}
}

func (p *Postgres) Name() string { return SourcePostgres }

// Query returns the SELECT used to read active seeds.
func (p *Postgres) Query() (string, []interface{}, error) {
	return sq.Select(seedColumns...).
		From(p.table).
		Where(sq.Eq{"active": true}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func (p *Postgres) Load(ctx context.Context) (*prospects.Pools, error) {
	seeds, err := p.loadSeeds(ctx)
	if err != nil {
		return nil, errors.NewSeedSourceFailedError(SourcePostgres, err)
	}
	if len(seeds) == 0 {
		return nil, errors.NewSeedSourceFailedError(SourcePostgres, fmt.Errorf("table %s has no active seeds", p.table))
	}
	sanitizeContacts(seeds, p.logger)

	pools := prospects.DefaultPools()
	pools.Seeds = seeds

	p.logger.Info("Loaded seed investors", map[string]interface{}{
		"table": p.table,
		"seeds": len(seeds),
	})
	return pools, nil
}

func (p *Postgres) loadSeeds(ctx context.Context) ([]prospects.SeedProfile, error) {
	query, args, err := p.Query()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query seeds: %w", err)
	}
	defer rows.Close()

	var seeds []prospects.SeedProfile
	for rows.Next() {
		var (
			s               prospects.SeedProfile
			sectors, stages pq.StringArray
			country, status sql.NullString
			email, linkedin sql.NullString
			website, phone  sql.NullString
			notes           sql.NullString
		)
		if err := rows.Scan(
			&s.Name, &s.Org, &s.City, &s.State, &country,
			&sectors, &stages, &status,
			&email, &linkedin, &website, &phone, &notes,
		); err != nil {
			return nil, fmt.Errorf("scan seed: %w", err)
		}
		s.Country = country.String
		s.Sectors = []string(sectors)
		s.StagePreferences = []string(stages)
		s.Status = status.String
		s.Email = email.String
		s.LinkedIn = linkedin.String
		s.Website = website.String
		s.Phone = phone.String
		s.Notes = notes.String
		seeds = append(seeds, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return seeds, nil
}
