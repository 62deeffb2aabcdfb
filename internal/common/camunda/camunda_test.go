package camunda

import (
	"errors"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	apperrors "rental-investment-workers/internal/common/errors"
	"rental-investment-workers/internal/common/metrics"
)

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("rpc error: code = Unavailable desc = connection refused"), true},
		{errors.New("context deadline exceeded"), true},
		{errors.New("rpc error: code = PermissionDenied"), false},
		{nil, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isRetryableZeebeError(tt.err))
	}
}

func TestInstrument_CountsOutcomes(t *testing.T) {
	const taskType = "instrument-test"
	log := zaptest.NewLogger(t)
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7}}

	ok := Instrument(taskType, JobHandlerFunc(func(worker.JobClient, entities.Job) error {
		return nil
	}), nil, log)
	failing := Instrument(taskType, JobHandlerFunc(func(worker.JobClient, entities.Job) error {
		return apperrors.NewSearchTimeoutError("comparables")
	}), nil, log)

	ok(nil, job)
	ok(nil, job)
	failing(nil, job)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "SEARCH_TIMEOUT")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}
