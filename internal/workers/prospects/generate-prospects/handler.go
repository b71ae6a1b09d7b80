// internal/workers/prospects/generate-prospects/handler.go
package generateprospects

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/observability"
	"prospect-dashboard/internal/models"
	"prospect-dashboard/internal/snapshots"
	"prospect-dashboard/internal/workers/jobs"
	"prospect-dashboard/pkg/registry"
)

const TaskType = "generate-prospects"

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

// Execute generates and stores a new snapshot. Unset mode and count fall
// back to the configured generator defaults.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	mode := models.GenerationMode(input.Mode)
	if mode == "" {
		mode = models.GenerationMode(h.config.DefaultMode)
	}
	count := input.Count
	if count == 0 {
		count = h.config.DefaultCount
	}

	snap, err := h.service.Generate(ctx, mode, count)
	if err != nil {
		return nil, err
	}

	h.logger.Info("Snapshot generated", map[string]interface{}{
		"snapshotId": snap.ID,
		"mode":       snap.Mode,
		"count":      len(snap.Prospects),
	})

	return &Output{
		SnapshotID:  snap.ID,
		Count:       len(snap.Prospects),
		GeneratedAt: snap.GeneratedAt.Format(time.RFC3339),
	}, nil
}
