// cmd/tools/prospectctl/root.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"prospect-dashboard/internal/bootstrap"
	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/models"
	"prospect-dashboard/internal/snapshots"
	"prospect-dashboard/internal/store"
)

// generatorFlags select how the offline snapshot is produced.
type generatorFlags struct {
	mode                string
	count               int
	seed                uint64
	source              string
	poolsFile           string
	includePennsylvania bool
	verbose             bool
}

type filterFlags struct {
	search   string
	sectors  []string
	states   []string
	statuses []string
	minScore int
	maxScore int
}

func newRootCmd() *cobra.Command {
	gf := &generatorFlags{}
	root := &cobra.Command{
		Use:           "prospectctl",
		Short:         "Generate, summarize and export investor prospect snapshots offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&gf.mode, "mode", "synthetic", "generation mode: synthetic or seed")
	pf.IntVar(&gf.count, "count", 75, "number of synthetic prospects")
	pf.Uint64Var(&gf.seed, "seed", 0, "random seed, 0 seeds from the clock")
	pf.StringVar(&gf.source, "source", "builtin", "pool source: builtin or yaml")
	pf.StringVar(&gf.poolsFile, "pools-file", "", "pools YAML file for --source yaml")
	pf.BoolVar(&gf.includePennsylvania, "include-pa", false, "add Pennsylvania to the target geography")
	pf.BoolVarP(&gf.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newGenerateCmd(gf),
		newStatsCmd(gf),
		newExportCmd(gf),
		newRegistryCmd(),
	)
	return root
}

func addFilterFlags(cmd *cobra.Command, ff *filterFlags) {
	f := cmd.Flags()
	f.StringVar(&ff.search, "search", "", "case-insensitive match on name, organization or email")
	f.StringSliceVar(&ff.sectors, "sectors", nil, "keep prospects in any of these sectors")
	f.StringSliceVar(&ff.states, "states", nil, "keep prospects located in these states")
	f.StringSliceVar(&ff.statuses, "statuses", nil, "keep prospects with these statuses")
	f.IntVar(&ff.minScore, "min-score", 0, "minimum fit score")
	f.IntVar(&ff.maxScore, "max-score", 100, "maximum fit score")
}

func (ff *filterFlags) criteria() models.FilterCriteria {
	c := models.DefaultFilterCriteria()
	c.Search = ff.search
	if ff.sectors != nil {
		c.Sectors = ff.sectors
	}
	if ff.states != nil {
		c.States = ff.states
	}
	for _, s := range ff.statuses {
		c.Statuses = append(c.Statuses, models.Status(s))
	}
	c.ScoreRange = models.NewScoreRange(ff.minScore, ff.maxScore)
	return c
}

func (gf *generatorFlags) newLogger() logger.Logger {
	if gf.verbose {
		return logger.NewStructured("debug", "console", "stderr")
	}
	return logger.NewNoOpLogger()
}

// service generates one snapshot into a single-slot memory store.
func (gf *generatorFlags) service(ctx context.Context) (*snapshots.Service, *models.Snapshot, error) {
	log := gf.newLogger()
	gen, err := bootstrap.Generator(ctx, config.GeneratorConfig{
		Mode:                gf.mode,
		Count:               gf.count,
		Seed:                gf.seed,
		IncludePennsylvania: gf.includePennsylvania,
		Source:              gf.source,
		PoolsFile:           gf.poolsFile,
	}, nil, log)
	if err != nil {
		return nil, nil, err
	}
	svc := snapshots.NewService(gen, store.NewMemory(1), log)
	snap, err := svc.Generate(ctx, models.GenerationMode(gf.mode), gf.count)
	if err != nil {
		return nil, nil, err
	}
	return svc, snap, nil
}

// createFile opens --output targets. Tests replace it.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeOutput runs write against the file at path, or against w when path is
// empty. A failed Close is reported when write itself succeeded.
func writeOutput(path string, w io.Writer, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(w)
	}
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
