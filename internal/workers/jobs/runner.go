// internal/workers/jobs/runner.go
package jobs

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/metrics"
	"prospect-dashboard/internal/common/observability"
	"prospect-dashboard/internal/common/validation"
	"prospect-dashboard/pkg/registry"
)

// ExecuteFunc does the work of one job and returns its output variables.
type ExecuteFunc func(ctx context.Context) (interface{}, error)

// Runner wraps a job with the timeout, metrics, tracing, completion and
// error handling every prospect worker shares.
type Runner struct {
	taskType string
	timeout  time.Duration
	logger   logger.Logger
	errors   *errors.ErrorHandler
	obs      *observability.Observability
}

func NewRunner(taskType string, timeout time.Duration, obs *observability.Observability, log logger.Logger) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{
		taskType: taskType,
		timeout:  timeout,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
		obs:      obs,
	}
}

// Run executes fn for job and reports the outcome to the broker.
func (r *Runner) Run(client worker.JobClient, job entities.Job, fn ExecuteFunc) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	ctx, span := r.obs.StartSpan(ctx, r.taskType,
		attribute.Int64("job.key", job.GetKey()),
		attribute.Int64("process.instance.key", job.GetProcessInstanceKey()),
	)
	defer span.End()

	r.logger.Info("Processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	status := "completed"
	output, err := fn(ctx)
	if err != nil {
		status = "failed"
		span.RecordError(err)
		std := errors.Normalize(err)
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(std.Code)).Inc()
		r.errors.HandleJobError(ctx, client, job, std)
	} else if err := Complete(ctx, client, job, output); err != nil {
		status = "complete_failed"
		r.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
		r.logger.Info("Job completed", map[string]interface{}{
			"jobKey":   job.GetKey(),
			"duration": time.Since(start).String(),
		})
	}

	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, elapsed, status)
}

// Complete sends the complete command with output as the job variables.
func Complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return errors.NewExternalServiceError("zeebe", err)
	}
	return nil
}

// Decode validates the job variables against the activity's input schema and
// unmarshals them into out. A nil activity skips validation.
func Decode(job entities.Job, activity *registry.Activity, out interface{}) error {
	if activity != nil && len(activity.InputSchema) > 0 {
		variables, err := job.GetVariablesAsMap()
		if err != nil {
			return errors.NewInputValidationFailedError("job variables are not a JSON object: " + err.Error())
		}
		result, err := validation.ValidateInput(variables, activity.InputSchema)
		if err != nil {
			return errors.NewInternalError(err)
		}
		if !result.Valid {
			return errors.NewInputValidationFailedError(strings.Join(result.GetErrorMessages(), "; ")).
				WithMetadata("fields", fieldsOf(result))
		}
	}

	if err := json.Unmarshal([]byte(job.GetVariables()), out); err != nil {
		return errors.NewInputValidationFailedError("parse input: " + err.Error())
	}
	return nil
}

func fieldsOf(result *validation.ValidationResult) []string {
	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}
