// internal/seeddata/yaml.go
package seeddata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/prospects"
)

// YAMLFile reads pools from a YAML document. Sections missing from the file
// keep their built-in values.
type YAMLFile struct {
	path   string
	logger logger.Logger
}

func NewYAMLFile(path string, log logger.Logger) *YAMLFile {
	return &YAMLFile{path: path, logger: log}
}

func (y *YAMLFile) Name() string { return SourceYAML }

func (y *YAMLFile) Load(ctx context.Context) (*prospects.Pools, error) {
	raw, err := os.ReadFile(y.path)
	if err != nil {
		return nil, errors.NewSeedSourceFailedError(SourceYAML, fmt.Errorf("read %s: %w", y.path, err))
	}
	pools, err := DecodeYAML(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.NewSeedSourceFailedError(SourceYAML, fmt.Errorf("%s: %w", y.path, err))
	}
	sanitizeContacts(pools.Seeds, y.logger)

	y.logger.Info("Loaded seed pools", map[string]interface{}{
		"path":          y.path,
		"organizations": len(pools.Organizations),
		"seeds":         len(pools.Seeds),
	})
	return pools, nil
}

// DecodeYAML parses a pools document and fills unset sections from the
// built-in pools. Unknown keys are rejected.
func DecodeYAML(r io.Reader) (*prospects.Pools, error) {
	var fileCfg prospects.Pools
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fileCfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return mergeDefaults(&fileCfg, prospects.DefaultPools()), nil
}

func mergeDefaults(p, def *prospects.Pools) *prospects.Pools {
	if len(p.FirstNames) == 0 {
		p.FirstNames = def.FirstNames
	}
	if len(p.LastNames) == 0 {
		p.LastNames = def.LastNames
	}
	if len(p.Organizations) == 0 {
		p.Organizations = def.Organizations
	}
	if len(p.Cities) == 0 {
		p.Cities = def.Cities
	}
	if len(p.Sectors) == 0 {
		p.Sectors = def.Sectors
	}
	if len(p.Stages) == 0 {
		p.Stages = def.Stages
	}
	if len(p.Statuses) == 0 {
		p.Statuses = def.Statuses
	}
	if len(p.TargetStates) == 0 {
		p.TargetStates = def.TargetStates
	}
	if len(p.PreferredSectors) == 0 {
		p.PreferredSectors = def.PreferredSectors
	}
	if len(p.SectorPortfolios) == 0 {
		p.SectorPortfolios = def.SectorPortfolios
	}
	if len(p.FallbackPortfolio) == 0 {
		p.FallbackPortfolio = def.FallbackPortfolio
	}
	if len(p.AreaCodes) == 0 {
		p.AreaCodes = def.AreaCodes
	}
	if len(p.Seeds) == 0 {
		p.Seeds = def.Seeds
	}
	return p
}
