// internal/workers/investment/search-listings/handler.go
package searchlistings

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "rental-investment-workers/internal/common/errors"
	"rental-investment-workers/internal/common/logger"
	"rental-investment-workers/internal/listings"
)

const (
	TaskType = "search-listings"

	queryType = "search_listings"
)

type Handler struct {
	config   *Config
	searcher listings.Searcher
	logger   logger.Logger
	errors   *apperrors.ErrorHandler
}

func NewHandler(config *Config, searcher listings.Searcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		searcher: searcher,
		logger:   log,
		errors:   apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		err = apperrors.NewInvalidSearchFilterError("parse input: " + err.Error())
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return err
	}
	return h.completeJob(ctx, client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	search := input.ListingSearch
	if err := search.Normalize(h.config.PageSize); err != nil {
		return nil, apperrors.NewInvalidSearchFilterError(err.Error())
	}

	page, err := h.searcher.Search(ctx, search)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewQueryTimeoutError(queryType)
		}
		return nil, apperrors.NewQueryExecutionFailedError(queryType, err)
	}

	h.logger.Info("listings searched", map[string]interface{}{
		"location": search.Location,
		"page":     page.Page,
		"returned": len(page.Properties),
		"total":    page.Total,
	})

	return &Output{ListingPage: *page, PageSize: search.PageSize}, nil
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
