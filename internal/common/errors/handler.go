// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler handles job errors with standardized error handling
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Resolution is what the handler will do with a failed job.
type Resolution struct {
	Throw   bool // throw a BPMN error instead of failing with retries
	Retries int
	BPMN    *BPMNError
	Source  *StandardError
}

// Resolve decides between failing with retries and throwing a BPMN error.
// Retries never exceed what the job has left.
func Resolve(job entities.Job, err error) Resolution {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	res := Resolution{BPMN: bpmnErr, Source: stdErr}
	retries := bpmnErr.Retries
	if retries == 0 || job.Retries <= 0 {
		res.Throw = true
		return res
	}
	if int(job.Retries) < retries {
		retries = int(job.Retries)
	}
	// Retries on a fail command is the remaining count, so one is consumed.
	res.Retries = retries - 1
	return res
}

// HandleJobError handles any error in a worker job
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	res := Resolve(job, err)
	h.logError(job, res)

	if res.Throw {
		h.throwBPMNError(ctx, client, job, res.BPMN)
		return
	}
	h.failJobWithRetries(ctx, client, job, res.BPMN, res.Retries)
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if cmdWithVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			if _, err := cmdWithVars.Send(ctx); err != nil {
				h.logSendError(job, "fail", err)
			}
			return
		}
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logSendError(job, "fail", err)
	}
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if cmdWithVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			if _, err := cmdWithVars.Send(ctx); err != nil {
				h.logSendError(job, "throw", err)
			}
			return
		}
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logSendError(job, "throw", err)
	}
}

func (h *ErrorHandler) logError(job entities.Job, res Resolution) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(res.Source.Code),
		"bpmnErrorCode":    res.BPMN.Code,
		"message":          res.BPMN.Message,
		"details":          res.Source.Details,
		"retryable":        res.Source.Retryable,
		"retries":          res.Retries,
		"thrown":           res.Throw,
		"errorCategory":    GetErrorCategory(res.Source.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}

func (h *ErrorHandler) logSendError(job entities.Job, command string, err error) {
	h.logger.Error("failed to send job command", map[string]interface{}{
		"jobKey":  job.Key,
		"command": command,
		"error":   err.Error(),
	})
}
