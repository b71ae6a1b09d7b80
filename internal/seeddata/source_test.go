// internal/seeddata/source_test.go
package seeddata

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/prospects"
)

// ==========================
// Source selection
// ==========================

func TestNew(t *testing.T) {
	log := logger.NewNoOpLogger()

	src, err := New(config.GeneratorConfig{}, nil, log)
	require.NoError(t, err)
	assert.Equal(t, SourceBuiltin, src.Name())

	src, err = New(config.GeneratorConfig{Source: SourceYAML, PoolsFile: "pools.yaml"}, nil, log)
	require.NoError(t, err)
	assert.Equal(t, SourceYAML, src.Name())

	_, err = New(config.GeneratorConfig{Source: SourcePostgres}, nil, log)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSeedSourceFailed, errors.Normalize(err).Code)

	_, err = New(config.GeneratorConfig{Source: "csv"}, nil, log)
	assert.Error(t, err)
}

func TestLoadPools_Pennsylvania(t *testing.T) {
	ctx := context.Background()

	pools, err := LoadPools(ctx, NewBuiltin(), config.GeneratorConfig{})
	require.NoError(t, err)
	assert.NotContains(t, pools.TargetStates, "PA")

	pools, err = LoadPools(ctx, NewBuiltin(), config.GeneratorConfig{IncludePennsylvania: true})
	require.NoError(t, err)
	assert.Contains(t, pools.TargetStates, "PA")
	assert.NotEmpty(t, pools.Cities["PA"])
}

func TestSanitizeContacts(t *testing.T) {
	seeds := []prospects.SeedProfile{
		{Name: "Sarah Chen", Email: "sarah.chen@", Phone: "555", Website: "techventures.com"},
		{Name: "Michael Rodriguez", Email: "m.rodriguez@bessemer.com", Phone: "(212) 555-0199", Website: "https://www.bvp.com"},
	}
	sanitizeContacts(seeds, logger.NewTestLogger(t))

	assert.Empty(t, seeds[0].Email)
	assert.Empty(t, seeds[0].Phone)
	assert.Empty(t, seeds[0].Website)
	assert.Equal(t, "m.rodriguez@bessemer.com", seeds[1].Email)
	assert.Equal(t, "(212) 555-0199", seeds[1].Phone)
	assert.Equal(t, "https://www.bvp.com", seeds[1].Website)
}

// ==========================
// YAML source
// ==========================

const poolsYAML = `
organizations: [Union Square Ventures, Greycroft]
sectors: [FinTech, Climate Tech]
statuses: [new, contacted]
seeds:
  - name: Sarah Chen
    org: TechVentures Capital
    city: New York
    state: NY
    sectors: [FinTech]
    stagePreferences: [Seed]
    email: not-an-email
`

func TestDecodeYAML_MergesDefaults(t *testing.T) {
	pools, err := DecodeYAML(strings.NewReader(poolsYAML))
	require.NoError(t, err)

	def := prospects.DefaultPools()
	assert.Equal(t, []string{"Union Square Ventures", "Greycroft"}, pools.Organizations)
	assert.Equal(t, []string{"FinTech", "Climate Tech"}, pools.Sectors)
	assert.Len(t, pools.Statuses, 2)
	assert.Equal(t, def.FirstNames, pools.FirstNames)
	assert.Equal(t, def.Cities, pools.Cities)
	require.Len(t, pools.Seeds, 1)
	assert.Equal(t, []string{"Seed"}, pools.Seeds[0].StagePreferences)
	assert.NoError(t, pools.ValidateSynthetic())
	assert.NoError(t, pools.ValidateSeeds())
}

func TestDecodeYAML_Empty(t *testing.T) {
	pools, err := DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, prospects.DefaultPools().Organizations, pools.Organizations)
}

func TestDecodeYAML_UnknownField(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("investors: [a]\n"))
	assert.Error(t, err)
}

func TestYAMLFile_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(poolsYAML), 0o600))

	pools, err := NewYAMLFile(path, logger.NewTestLogger(t)).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, pools.Seeds, 1)
	assert.Empty(t, pools.Seeds[0].Email, "invalid email should be dropped")
}

func TestYAMLFile_Missing(t *testing.T) {
	_, err := NewYAMLFile(filepath.Join(t.TempDir(), "missing.yaml"), logger.NewNoOpLogger()).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSeedSourceFailed, errors.Normalize(err).Code)
}

// ==========================
// Postgres source
// ==========================

var seedQuery = regexp.QuoteMeta(
	"SELECT name, org, city, state, country, sectors, stage_preferences, status, email, linkedin, website, phone, notes " +
		"FROM seed_investors WHERE active = $1 ORDER BY id")

func TestPostgres_Query(t *testing.T) {
	query, args, err := NewPostgres(nil, "", logger.NewNoOpLogger()).Query()
	require.NoError(t, err)
	assert.Regexp(t, seedQuery, query)
	assert.Equal(t, []interface{}{true}, args)
}

func TestPostgres_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(seedColumns).
		AddRow("Sarah Chen", "TechVentures Capital", "New York", "NY", "US",
			"{FinTech,SaaS}", "{Seed,\"Series A\"}", nil,
			"sarah@techventures.com", nil, nil, nil, "Met at NYC FinTech week.").
		AddRow("Emily Davis", "Primary Venture Partners", "Hoboken", "NJ", nil,
			"{SaaS}", "{Pre-Seed}", "contacted",
			"bad", nil, nil, "(201) 555-0101", nil)
	mock.ExpectQuery(seedQuery).WithArgs(true).WillReturnRows(rows)

	pools, err := NewPostgres(db, "", logger.NewTestLogger(t)).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, pools.Seeds, 2)

	first := pools.Seeds[0]
	assert.Equal(t, []string{"FinTech", "SaaS"}, first.Sectors)
	assert.Equal(t, []string{"Seed", "Series A"}, first.StagePreferences)
	assert.Equal(t, "Met at NYC FinTech week.", first.Notes)

	second := pools.Seeds[1]
	assert.Equal(t, "contacted", second.Status)
	assert.Empty(t, second.Email)
	assert.Equal(t, "(201) 555-0101", second.Phone)

	assert.Equal(t, prospects.DefaultPools().Organizations, pools.Organizations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_LoadEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(seedQuery).WillReturnRows(sqlmock.NewRows(seedColumns))

	_, err = NewPostgres(db, "", logger.NewNoOpLogger()).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSeedSourceFailed, errors.Normalize(err).Code)
}

func TestPostgres_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(seedQuery).WillReturnError(assert.AnError)

	_, err = NewPostgres(db, "", logger.NewNoOpLogger()).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPostgres_CustomTable(t *testing.T) {
	query, _, err := NewPostgres(nil, "crm.investors", logger.NewNoOpLogger()).Query()
	require.NoError(t, err)
	assert.Contains(t, query, "FROM crm.investors")
}
