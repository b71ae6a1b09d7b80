// internal/workers/prospects/filter-prospects/handler.go
package filterprospects

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

const TaskType = "filter-prospects"

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

// Execute returns the ids of the matching prospects in snapshot order,
// which is fit score descending.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	snap, filtered, err := h.service.Query(ctx, input.SnapshotID, input.Criteria.FilterCriteria())
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(filtered))
	for i := range filtered {
		ids[i] = filtered[i].ID
	}

	h.logger.Debug("Prospects filtered", map[string]interface{}{
		"snapshotId": snap.ID,
		"total":      len(snap.Prospects),
		"matched":    len(ids),
	})

	return &Output{
		SnapshotID:  snap.ID,
		Total:       len(ids),
		ProspectIDs: ids,
	}, nil
}
