// internal/workers/investment/forecast-cash-flow/handler.go
package forecastcashflow

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "rental-investment-workers/internal/common/errors"
	"rental-investment-workers/internal/common/logger"
	"rental-investment-workers/internal/common/metrics"
	"rental-investment-workers/internal/investment"
)

const (
	TaskType = "forecast-cash-flow"
)

type Handler struct {
	config *Config
	logger logger.Logger
	errors *apperrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		logger: log,
		errors: apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.run(ctx, job.Variables)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}
	return h.completeJob(ctx, client, job, output)
}

func (h *Handler) run(ctx context.Context, variables string) (*Output, error) {
	result, err := inputSchema.ValidateJSON(variables)
	if err != nil {
		return nil, apperrors.NewInvalidForecastInputError(err)
	}
	if !result.Valid {
		return nil, apperrors.NewInvalidForecastInputError(errors.New(strings.Join(result.GetErrorMessages(), "; ")))
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidForecastInputError(err)
	}
	return h.execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := investment.Forecast(input.ToForecastInput(h.config.Defaults, h.config.SaleCostPercent))
	if err != nil {
		if errors.Is(err, investment.ErrInvalidInput) {
			return nil, apperrors.NewInvalidForecastInputError(err)
		}
		return nil, apperrors.NewInternalError(err)
	}
	metrics.ForecastsComputed.Inc()

	output := &Output{
		ForecastID:   uuid.NewString(),
		ListingID:    input.ListingID,
		Result:       result,
		IRRConverged: result.IRRConverged(),
	}

	if horizons := result.NonConvergedHorizons(); len(horizons) > 0 {
		output.NonConvergedHorizons = horizons
		metrics.RecordNonConverged(horizons)
		h.logger.Warn("irr did not converge, returning best estimate", map[string]interface{}{
			"forecastId": output.ForecastID,
			"horizons":   horizons,
		})
	}

	h.logger.Info("forecast computed", map[string]interface{}{
		"forecastId":     output.ForecastID,
		"zpid":           input.ListingID,
		"monthlyPayment": result.MonthlyPayment,
		"cashOnCash":     result.Returns.CashOnCashReturn,
		"tenYearIrr":     result.Returns.TenYearIRR.Rate,
	})

	return output, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	return nil
}
