package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      string
		retries   int
		retryable bool
	}{
		{
			name:    "invalid forecast input is not retried",
			err:     NewInvalidForecastInputError(stderrors.New("invalid acquisition.price: must be positive")),
			code:    "INVALID_FORECAST_INPUT",
			retries: 0,
		},
		{
			name:      "comparables lookup is retried",
			err:       NewComparablesLookupFailedError("postgres", stderrors.New("connection reset")),
			code:      "COMPARABLES_LOOKUP_FAILED",
			retries:   3,
			retryable: true,
		},
		{
			name:      "search timeout gets fewer retries",
			err:       NewSearchTimeoutError("comparables"),
			code:      "SEARCH_TIMEOUT",
			retries:   2,
			retryable: true,
		},
		{
			name:    "irr non convergence is a business error",
			err:     NewIRRNotConvergedError([]int{5, 10}),
			code:    "IRR_NOT_CONVERGED",
			retries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)

			assert.Equal(t, tt.code, bpmn.Code)
			assert.Equal(t, tt.retries, bpmn.Retries)
			assert.Equal(t, tt.retryable, bpmn.Retryable)

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.code, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	err := NewIRRNotConvergedError([]int{15}).WithMetadata("forecastId", "f-1")

	vars := ConvertToBPMNError(err).ToErrorVariables()
	assert.Equal(t, "f-1", vars["forecastId"])
}

func TestNormalize(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	wrapped := fmt.Errorf("listing upsert: %w", NewDatabaseInsertFailedError(cause))

	got := Normalize(wrapped)
	assert.Equal(t, ErrCodeDatabaseInsertFailed, got.Code)
	assert.True(t, stderrors.Is(got, cause))

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.False(t, plain.Retryable)
}

func TestGetErrorCategory(t *testing.T) {
	cases := map[ErrorCode]string{
		ErrCodeInvalidForecastInput:     "VALIDATION",
		ErrCodeInvalidSearchFilter:      "VALIDATION",
		ErrCodeIRRNotConverged:          "INVESTMENT",
		ErrCodeComparablesLookupFailed:  "INVESTMENT",
		ErrCodeSearchQueryFailed:        "SEARCH",
		ErrCodeQueryTimeout:             "DATABASE",
		ErrCodeDatabaseConnectionFailed: "DATABASE",
		ErrCodeCacheUnavailable:         "CACHE",
		ErrCodeNotificationSendFailed:   "NOTIFICATION",
		ErrCodeInternal:                 "OTHER",
	}

	for code, category := range cases {
		assert.Equal(t, category, GetErrorCategory(code), string(code))
	}
}

func TestRemainingRetries(t *testing.T) {
	job := func(retries int32) entities.Job {
		return entities.Job{ActivatedJob: &pb.ActivatedJob{Retries: retries}}
	}

	assert.Equal(t, int32(2), remainingRetries(job(3), 3))
	assert.Equal(t, int32(3), remainingRetries(job(10), 3))
	assert.Equal(t, int32(0), remainingRetries(job(1), 3))
	require.True(t, IsRetryableErrorCode(ErrCodeQueryExecutionFailed))
	require.False(t, IsRetryableErrorCode(ErrCodeInvalidPropertyInput))
}
