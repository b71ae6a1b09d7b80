// Package errors provides standardized error handling for the HTTP API and
// BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Prospect domain errors
const (
	ErrCodeSnapshotNotFound      ErrorCode = "SNAPSHOT_NOT_FOUND"
	ErrCodeProspectNotFound      ErrorCode = "PROSPECT_NOT_FOUND"
	ErrCodeGenerationFailed      ErrorCode = "GENERATION_FAILED"
	ErrCodeInvalidFilterCriteria ErrorCode = "INVALID_FILTER_CRITERIA"
	ErrCodeExportFailed          ErrorCode = "EXPORT_FAILED"
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	ErrCodeSeedSourceFailed    ErrorCode = "SEED_SOURCE_FAILED"
	ErrCodeSnapshotStoreFailed ErrorCode = "SNAPSHOT_STORE_FAILED"
	ErrCodeSearchIndexFailed   ErrorCode = "SEARCH_INDEX_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
)

// Generic codes
const (
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout          ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	e := &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// As returns the first StandardError in err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := As(err); ok {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewSnapshotNotFoundError(snapshotID string) *StandardError {
	e := newError(ErrCodeSnapshotNotFound, "Snapshot not found", nil, false)
	if snapshotID == "" {
		e.Details = "no snapshot has been generated yet"
	} else {
		e.Details = fmt.Sprintf("snapshotId: %s", snapshotID)
	}
	return e.WithMetadata("snapshotId", snapshotID)
}

func NewProspectNotFoundError(snapshotID string, prospectID int) *StandardError {
	e := newError(ErrCodeProspectNotFound, "Prospect not found", nil, false)
	e.Details = fmt.Sprintf("snapshotId: %s, prospectId: %d", snapshotID, prospectID)
	return e
}

// NewGenerationFailedError is not retryable: the same pools fail the same way.
func NewGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeGenerationFailed, "Prospect generation failed", err, false)
}

func NewInvalidFilterCriteriaError(details string) *StandardError {
	e := newError(ErrCodeInvalidFilterCriteria, "Invalid filter criteria", nil, false)
	e.Details = details
	return e
}

func NewExportFailedError(err error) *StandardError {
	return newError(ErrCodeExportFailed, "CSV export failed", err, true)
}

func NewInputValidationFailedError(details string) *StandardError {
	e := newError(ErrCodeInputValidationFailed, "Input validation failed", nil, false)
	e.Details = details
	return e
}

func NewSeedSourceFailedError(source string, err error) *StandardError {
	return newError(ErrCodeSeedSourceFailed, fmt.Sprintf("Seed source '%s' failed", source), err, true)
}

func NewSnapshotStoreFailedError(operation string, err error) *StandardError {
	e := newError(ErrCodeSnapshotStoreFailed, "Snapshot store error", err, true)
	return e.WithMetadata("operation", operation)
}

func NewSearchIndexFailedError(err error) *StandardError {
	return newError(ErrCodeSearchIndexFailed, "Search indexing failed", err, true)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err, true)
}

// Generic constructors

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err, true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err, true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	e := newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), nil, false)
	e.Details = details
	return e
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeSnapshotNotFound:         "SNAPSHOT_NOT_FOUND",
	ErrCodeProspectNotFound:         "PROSPECT_NOT_FOUND",
	ErrCodeGenerationFailed:         "GENERATION_FAILED",
	ErrCodeInvalidFilterCriteria:    "INVALID_FILTER_CRITERIA",
	ErrCodeExportFailed:             "EXPORT_FAILED",
	ErrCodeInputValidationFailed:    "INPUT_VALIDATION_FAILED",
	ErrCodeSeedSourceFailed:         "SEED_SOURCE_FAILED",
	ErrCodeSnapshotStoreFailed:      "SNAPSHOT_STORE_FAILED",
	ErrCodeSearchIndexFailed:        "SEARCH_INDEX_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSnapshotStoreFailed,
		ErrCodeSeedSourceFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeSearchIndexFailed,
		ErrCodeTimeout:
		return 2

	case ErrCodeExportFailed:
		return 1

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. HTTP Mapping
// ==========================

// HTTPStatus returns the response status for a code.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeSnapshotNotFound, ErrCodeProspectNotFound, ErrCodeResourceNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidFilterCriteria, ErrCodeInputValidationFailed:
		return http.StatusBadRequest
	case ErrCodeGenerationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeSnapshotStoreFailed, ErrCodeDatabaseConnectionFailed:
		return http.StatusServiceUnavailable
	case ErrCodeSeedSourceFailed, ErrCodeSearchIndexFailed, ErrCodeExternalService:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 6. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SNAPSHOT"):
		return "STORAGE"
	case strings.Contains(codeStr, "SEED") || strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "GENERATION") || strings.Contains(codeStr, "EXPORT"):
		return "PROSPECTS"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	default:
		return "OTHER"
	}
}
