// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobWithRetries(retries int32) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:     42,
		Type:    "generate-prospects",
		Retries: retries,
	}}
}

// ==========================
// Standard Error Tests
// ==========================

func TestStandardError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("save snapshot: %w", NewSnapshotStoreFailedError("save", cause))

	stdErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeSnapshotStoreFailed, stdErr.Code)
	assert.Equal(t, "connection refused", stdErr.Details)
	assert.Equal(t, "save", stdErr.Metadata["operation"])
	assert.True(t, stderrors.Is(err, cause))
}

func TestNormalize(t *testing.T) {
	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
	assert.False(t, plain.Retryable)

	typed := NewSnapshotNotFoundError("abc")
	assert.Same(t, typed, Normalize(typed))
}

func TestSnapshotNotFoundDetails(t *testing.T) {
	assert.Equal(t, "snapshotId: abc", NewSnapshotNotFoundError("abc").Details)
	assert.Equal(t, "no snapshot has been generated yet", NewSnapshotNotFoundError("").Details)
}

// ==========================
// BPMN Conversion Tests
// ==========================

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{"store failure retries", NewSnapshotStoreFailedError("load", stderrors.New("x")), "SNAPSHOT_STORE_FAILED", 3},
		{"index failure retries twice", NewSearchIndexFailedError(stderrors.New("x")), "SEARCH_INDEX_FAILED", 2},
		{"export retries once", NewExportFailedError(stderrors.New("x")), "EXPORT_FAILED", 1},
		{"not found is a business error", NewSnapshotNotFoundError("abc"), "SNAPSHOT_NOT_FOUND", 0},
		{"validation is a business error", NewInputValidationFailedError("count"), "INPUT_VALIDATION_FAILED", 0},
		{"unmapped code passes through", NewTimeoutError("redis", stderrors.New("x")), "TIMEOUT_ERROR", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.wantCode, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		jobRetries  int32
		wantThrow   bool
		wantRetries int
	}{
		{"retryable with budget", NewSnapshotStoreFailedError("save", stderrors.New("x")), 3, false, 2},
		{"retryable capped by job", NewSnapshotStoreFailedError("save", stderrors.New("x")), 2, false, 1},
		{"retryable without job retries", NewSnapshotStoreFailedError("save", stderrors.New("x")), 0, true, 0},
		{"business error throws", NewSnapshotNotFoundError("abc"), 3, true, 0},
		{"plain error throws", stderrors.New("boom"), 3, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(jobWithRetries(tt.jobRetries), tt.err)
			assert.Equal(t, tt.wantThrow, res.Throw)
			assert.Equal(t, tt.wantRetries, res.Retries)
			require.NotNil(t, res.BPMN)
		})
	}
}

// ==========================
// Utility Tests
// ==========================

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeSnapshotNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeProspectNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeInvalidFilterCriteria))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeInputValidationFailed))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(ErrCodeGenerationFailed))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrCodeSnapshotStoreFailed))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeSearchIndexFailed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodeInternal))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "STORAGE", GetErrorCategory(ErrCodeSnapshotNotFound))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeSeedSourceFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchIndexFailed))
	assert.Equal(t, "PROSPECTS", GetErrorCategory(ErrCodeExportFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidFilterCriteria))
	assert.Equal(t, "NOT_FOUND", GetErrorCategory(ErrCodeProspectNotFound))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
	assert.True(t, IsRetryableErrorCode(ErrCodeSnapshotStoreFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeGenerationFailed))
}
