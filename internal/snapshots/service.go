// internal/snapshots/service.go
package snapshots

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/metrics"
	"prospect-dashboard/internal/models"
	"prospect-dashboard/internal/prospects"
	"prospect-dashboard/internal/search"
	"prospect-dashboard/internal/store"
)

// Indexer receives every new snapshot. *search.Indexer satisfies it.
type Indexer interface {
	IndexSnapshot(ctx context.Context, snap *models.Snapshot) (*search.IndexResult, error)
}

// Service generates snapshots and resolves them for the HTTP API, the job
// workers and the CLI.
type Service struct {
	generator *prospects.Generator
	store     store.Store
	indexer   Indexer
	now       prospects.Clock
	logger    logger.Logger
}

type Option func(*Service)

// WithIndexer indexes every generated snapshot. Index failures are logged
// and do not fail generation.
func WithIndexer(ix Indexer) Option {
	return func(s *Service) { s.indexer = ix }
}

func WithClock(c prospects.Clock) Option {
	return func(s *Service) { s.now = c }
}

func NewService(gen *prospects.Generator, st store.Store, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		generator: gen,
		store:     st,
		now:       time.Now,
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs the generator once and saves the result as a new snapshot.
func (s *Service) Generate(ctx context.Context, mode models.GenerationMode, count int) (*models.Snapshot, error) {
	if mode == "" {
		mode = models.ModeSynthetic
	}

	start := time.Now()
	records, err := s.generator.Generate(mode, count)
	if err != nil {
		if stderrors.Is(err, prospects.ErrInvalidCount) || stderrors.Is(err, prospects.ErrUnknownMode) {
			return nil, errors.NewInputValidationFailedError(err.Error())
		}
		return nil, errors.NewGenerationFailedError(err)
	}
	metrics.GenerationDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	metrics.ProspectsGenerated.WithLabelValues(string(mode)).Add(float64(len(records)))

	snap := store.NewSnapshot(mode, records, s.now())
	if err := s.store.Save(ctx, snap); err != nil {
		return nil, err
	}

	s.logger.Info("Generated snapshot", map[string]interface{}{
		"snapshotId": snap.ID,
		"mode":       mode,
		"count":      len(records),
	})

	if s.indexer != nil {
		if _, err := s.indexer.IndexSnapshot(ctx, snap); err != nil {
			s.logger.Warn("Failed to index snapshot", map[string]interface{}{
				"snapshotId": snap.ID,
				"error":      err.Error(),
			})
		}
	}
	return snap, nil
}

// Resolve returns the snapshot with id, or the latest one when id is empty.
func (s *Service) Resolve(ctx context.Context, id string) (*models.Snapshot, error) {
	if id == "" {
		return s.store.Latest(ctx)
	}
	return s.store.Get(ctx, id)
}

// Query resolves a snapshot and applies criteria to it.
func (s *Service) Query(ctx context.Context, id string, criteria models.FilterCriteria) (*models.Snapshot, []models.Prospect, error) {
	snap, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	filtered := prospects.Filter(snap.Prospects, criteria)
	metrics.FilterResultSize.Observe(float64(len(filtered)))
	return snap, filtered, nil
}

// Prospect returns a single record of a snapshot.
func (s *Service) Prospect(ctx context.Context, snapshotID string, prospectID int) (*models.Prospect, error) {
	snap, err := s.Resolve(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	p, ok := snap.Find(prospectID)
	if !ok {
		return nil, errors.NewProspectNotFoundError(snap.ID, prospectID)
	}
	return p, nil
}

// Export renders the filtered records of a snapshot as CSV.
func (s *Service) Export(ctx context.Context, id string, criteria models.FilterCriteria) (*Export, error) {
	snap, filtered, err := s.Query(ctx, id, criteria)
	if err != nil {
		return nil, err
	}
	csv := prospects.ExportCSV(filtered)
	metrics.ExportRows.Add(float64(len(filtered)))
	return &Export{
		SnapshotID: snap.ID,
		FileName:   prospects.ExportFileName(s.now()),
		RowCount:   len(filtered),
		CSV:        csv,
	}, nil
}

// Export is a rendered CSV download.
type Export struct {
	SnapshotID string
	FileName   string
	RowCount   int
	CSV        string
}

func (e *Export) String() string {
	return fmt.Sprintf("%s (%d rows)", e.FileName, e.RowCount)
}
