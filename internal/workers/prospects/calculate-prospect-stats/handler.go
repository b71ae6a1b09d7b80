// internal/workers/prospects/calculate-prospect-stats/handler.go
package calculateprospectstats

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"

	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/observability"
	"prospect-dashboard/internal/prospects"
	"prospect-dashboard/internal/snapshots"
	"prospect-dashboard/internal/workers/jobs"
	"prospect-dashboard/pkg/registry"
)

const TaskType = "calculate-prospect-stats"

type Handler struct {
	config   *Config
	service  *snapshots.Service
	activity *registry.Activity
	obs      *observability.Observability
	runner   *jobs.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, svc *snapshots.Service, activity *registry.Activity, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		service:  svc,
		activity: activity,
		obs:      obs,
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
	snap, filtered, err := h.service.Query(ctx, input.SnapshotID, input.Criteria.FilterCriteria())
	if err != nil {
		return nil, err
	}

	_, span := h.obs.StartSpan(ctx, "prospects.summarize", attribute.Int("prospects", len(filtered)))
	stats := prospects.Summarize(filtered)
	span.End()

	return &Output{
		SnapshotID: snap.ID,
		Stats:      stats,
	}, nil
}
