// internal/workers/investment/estimate-rent/handler.go
package estimaterent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	apperrors "rental-investment-workers/internal/common/errors"
	"rental-investment-workers/internal/common/logger"
	"rental-investment-workers/internal/common/metrics"
	"rental-investment-workers/internal/listings"
	"rental-investment-workers/internal/rentestimate"
)

const (
	TaskType = "estimate-rent"

	cacheKeyPrefix = "rent:estimate:"
)

type Handler struct {
	config    *Config
	listings  listings.Reader
	estimator *rentestimate.Estimator
	redis     *redis.Client
	logger    logger.Logger
	errors    *apperrors.ErrorHandler
}

// NewHandler builds a handler. reader is needed only for zpid inputs and
// redis may be nil to disable caching.
func NewHandler(config *Config, reader listings.Reader, lookup rentestimate.ComparablesLookup, redis *redis.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		listings:  reader,
		estimator: rentestimate.NewEstimator(lookup),
		redis:     redis,
		logger:    log,
		errors:    apperrors.NewErrorHandler(log),
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
		err = apperrors.NewInvalidPropertyInputError("parse input: " + err.Error())
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
	subject, err := h.resolveSubject(ctx, input)
	if err != nil {
		return nil, err
	}

	output := &Output{ListingID: subject.ID}
	if estimate, ok := h.cached(ctx, subject.ID); ok {
		output.RentEstimate = estimate
		output.CacheHit = true
	} else {
		estimate, err := h.estimator.Estimate(ctx, subject)
		if err != nil {
			return nil, apperrors.NewComparablesLookupFailedError(h.config.ComparablesSource, err)
		}
		output.RentEstimate = estimate
		h.store(ctx, subject.ID, estimate)
	}

	if output.Source == rentestimate.SourceCustom {
		rent := output.EstimatedRent
		output.CustomRentEstimate = &rent
	}

	metrics.RentEstimates.WithLabelValues(string(output.Source), cacheLabel(output.CacheHit)).Inc()

	h.logger.Info("rent estimated", map[string]interface{}{
		"zpid":        subject.ID,
		"rent":        output.EstimatedRent,
		"source":      output.Source,
		"confidence":  output.ConfidenceScore,
		"comparables": len(output.Comparables),
		"cacheHit":    output.CacheHit,
	})

	return output, nil
}

func (h *Handler) resolveSubject(ctx context.Context, input *Input) (rentestimate.PropertySnapshot, error) {
	if input.Property != nil {
		subject := *input.Property
		if subject.ID == "" {
			subject.ID = input.ListingID
		}
		if strings.TrimSpace(subject.PropertyType) == "" {
			return subject, apperrors.NewInvalidPropertyInputError("property.propertyType is required")
		}
		return subject, nil
	}

	if input.ListingID == "" {
		return rentestimate.PropertySnapshot{}, apperrors.NewInvalidPropertyInputError("either zpid or property is required")
	}
	if h.listings == nil {
		return rentestimate.PropertySnapshot{}, apperrors.NewInvalidPropertyInputError("zpid lookup is not available, pass the property inline")
	}

	listing, err := h.listings.GetByZpid(ctx, input.ListingID)
	if errors.Is(err, listings.ErrListingNotFound) {
		return rentestimate.PropertySnapshot{}, apperrors.NewInvalidPropertyInputError(err.Error())
	}
	if err != nil {
		return rentestimate.PropertySnapshot{}, apperrors.NewQueryExecutionFailedError("get_listing", err)
	}
	return listing.Snapshot(), nil
}

// cached returns a stored estimate. Cache errors are logged and treated as misses.
func (h *Handler) cached(ctx context.Context, id string) (rentestimate.RentEstimate, bool) {
	var estimate rentestimate.RentEstimate
	if h.redis == nil || id == "" {
		return estimate, false
	}

	val, err := h.redis.Get(ctx, cacheKeyPrefix+id).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn("rent estimate cache read failed", map[string]interface{}{
				"zpid":  id,
				"error": err,
			})
		}
		return estimate, false
	}

	if err := json.Unmarshal([]byte(val), &estimate); err != nil {
		h.logger.Warn("discarding unreadable cached estimate", map[string]interface{}{
			"zpid":  id,
			"error": err,
		})
		return estimate, false
	}
	return estimate, true
}

func (h *Handler) store(ctx context.Context, id string, estimate rentestimate.RentEstimate) {
	if h.redis == nil || id == "" {
		return
	}

	data, err := json.Marshal(estimate)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, cacheKeyPrefix+id, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("rent estimate cache write failed", map[string]interface{}{
			"zpid":  id,
			"error": fmt.Errorf("set %s: %w", cacheKeyPrefix+id, err),
		})
	}
}

func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
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
