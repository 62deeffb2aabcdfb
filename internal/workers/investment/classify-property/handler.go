// internal/workers/investment/classify-property/handler.go
package classifyproperty

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"rental-investment-workers/internal/common/aws"
	apperrors "rental-investment-workers/internal/common/errors"
	"rental-investment-workers/internal/common/logger"
	"rental-investment-workers/internal/common/metrics"
	"rental-investment-workers/internal/investment"
	"rental-investment-workers/internal/listings"
	"rental-investment-workers/internal/models"
	"rental-investment-workers/internal/rentestimate"
)

const (
	TaskType = "classify-property"
)

// Handler classifies a listing against the 1% rules, stores the enriched
// listing and alerts on listings that meet both rules. Listings without a
// provider id are stored under a generated one.
type Handler struct {
	config *Config
	store  listings.Writer
	alerts aws.AlertSender
	logger logger.Logger
	errors *apperrors.ErrorHandler
	now    func() time.Time
}

// NewHandler builds a handler. alerts may be nil.
func NewHandler(config *Config, store listings.Writer, alerts aws.AlertSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		store:  store,
		alerts: alerts,
		logger: log,
		errors: apperrors.NewErrorHandler(log),
		now:    time.Now,
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
	listing := &input.Listing
	if strings.TrimSpace(listing.Zpid) == "" {
		listing.Zpid = uuid.NewString()
	}
	if err := listing.Validate(); err != nil {
		return nil, apperrors.NewInvalidPropertyInputError(err.Error())
	}

	rent, source, known := listing.MonthlyRent()
	if !known {
		source = ""
	}

	c := investment.ClassifyProperty(listing.Price, rent, listing.SquareFootage)
	listing.ApplyClassification(c, source, h.now())
	metrics.ListingsClassified.WithLabelValues(metrics.ClassificationOutcome(c.MeetsRentRule, c.MeetsSqftRule)).Inc()

	if err := h.store.Upsert(ctx, listing); err != nil {
		return nil, apperrors.NewDatabaseInsertFailedError(err).WithMetadata("zpid", listing.Zpid)
	}

	output := &Output{
		ListingID:      listing.Zpid,
		Classification: c,
		MonthlyRent:    rent,
		EstimateSource: string(source),
		RentKnown:      known,
	}

	if c.MeetsCombinedRules && h.config.AlertsEnabled && h.alerts != nil {
		if err := h.alerts.SendDealAlert(ctx, dealAlert(listing, rent, source)); err != nil {
			return nil, apperrors.NewNotificationSendFailedError("deal_alert", err).WithMetadata("zpid", listing.Zpid)
		}
		output.AlertSent = true
	}

	h.logger.Info("listing classified", map[string]interface{}{
		"zpid":             listing.Zpid,
		"rentToValueRatio": c.RentToValueRatio,
		"sqftToValueRatio": c.SqftToValueRatio,
		"meetsCombined":    c.MeetsCombinedRules,
		"estimateSource":   output.EstimateSource,
		"alertSent":        output.AlertSent,
	})

	return output, nil
}

func dealAlert(l *models.Listing, rent float64, source rentestimate.Source) aws.DealAlert {
	return aws.DealAlert{
		ListingID:        l.Zpid,
		Address:          l.Address,
		City:             l.City,
		State:            l.State,
		Price:            l.Price,
		MonthlyRent:      rent,
		SquareFootage:    l.SquareFootage,
		RentToValueRatio: l.RentToValueRatio,
		SqftToValueRatio: l.SqftToValueRatio,
		EstimateSource:   string(source),
	}
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
