// cmd/prospect-server/workers.go
package main

import (
	"prospect-dashboard/internal/common/camunda"
	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/observability"
	"prospect-dashboard/internal/snapshots"
	"prospect-dashboard/pkg/registry"

	cps "prospect-dashboard/internal/workers/prospects/calculate-prospect-stats"
	epc "prospect-dashboard/internal/workers/prospects/export-prospects-csv"
	fp "prospect-dashboard/internal/workers/prospects/filter-prospects"
	gp "prospect-dashboard/internal/workers/prospects/generate-prospects"
)

// startWorkers opens a job worker for every enabled prospect task type.
func startWorkers(zeebe *camunda.Client, cfg *config.Config, svc *snapshots.Service, obs *observability.Observability, log logger.Logger) ([]*camunda.Worker, error) {
	reg, err := registry.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		return nil, err
	}
	if problems := reg.Validate(); len(problems) > 0 {
		return nil, problems[0]
	}

	handlers := map[string]func(*registry.Activity) camunda.JobHandler{
		gp.TaskType: func(a *registry.Activity) camunda.JobHandler {
			return gp.NewHandler(gp.LoadConfig(cfg), svc, a, obs, log)
		},
		fp.TaskType: func(a *registry.Activity) camunda.JobHandler {
			return fp.NewHandler(fp.LoadConfig(cfg), svc, a, obs, log)
		},
		cps.TaskType: func(a *registry.Activity) camunda.JobHandler {
			return cps.NewHandler(cps.LoadConfig(cfg), svc, a, obs, log)
		},
		epc.TaskType: func(a *registry.Activity) camunda.JobHandler {
			return epc.NewHandler(epc.LoadConfig(cfg), svc, a, obs, log)
		},
	}

	var workers []*camunda.Worker
	for _, taskType := range []string{gp.TaskType, fp.TaskType, cps.TaskType, epc.TaskType} {
		if !config.IsWorkerEnabled(cfg, taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			continue
		}
		activity, err := reg.Activity(taskType)
		if err != nil {
			return nil, err
		}
		handler := handlers[taskType](activity)
		workers = append(workers, camunda.NewWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handler, log))
	}

	log.Info("Workers registered", map[string]interface{}{"count": len(workers)})
	return workers, nil
}
