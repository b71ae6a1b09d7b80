// internal/workers/prospects/export-prospects-csv/handler.go
package exportprospectscsv

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/observability"
	"prospect-dashboard/internal/snapshots"
	"prospect-dashboard/internal/workers/jobs"
	"prospect-dashboard/pkg/registry"
)

const TaskType = "export-prospects-csv"

type Handler struct {
	config   *Config
	service  *snapshots.Service
	activity *registry.Activity
	runner   *jobs.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, svc *snapshots.Service, activity *registry.Activity, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		service:  svc,
		activity: activity,
		runner:   jobs.NewRunner(TaskType, config.Timeout, obs, log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context) (interface{}, error) {
		var input Input
		if err := jobs.Decode(job, h.activity, &input); err != nil {
			return nil, err
		}
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	export, err := h.service.Export(ctx, input.SnapshotID, input.Criteria.FilterCriteria())
	if err != nil {
		return nil, err
	}

	h.logger.Info("Prospects exported", map[string]interface{}{
		"snapshotId": export.SnapshotID,
		"fileName":   export.FileName,
		"rows":       export.RowCount,
	})

	return &Output{
		SnapshotID: export.SnapshotID,
		FileName:   export.FileName,
		RowCount:   export.RowCount,
		CSV:        export.CSV,
	}, nil
}
