// internal/common/metrics/metrics.go
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// Investment metrics.
var (
	ForecastsComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "investment_forecasts_computed_total",
			Help: "Number of 30-year forecasts computed",
		},
	)

	IRRNonConverged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investment_irr_non_converged_total",
			Help: "IRR computations that returned a best-effort value, by horizon in years",
		},
		[]string{"horizon"},
	)

	RentEstimates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investment_rent_estimates_total",
			Help: "Rent estimates produced, by source",
		},
		[]string{"source", "cache"},
	)

	ListingsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investment_listings_classified_total",
			Help: "Listings classified against the 1% rules, by outcome",
		},
		[]string{"outcome"},
	)
)

// Classification outcomes.
const (
	OutcomeBoth     = "both"
	OutcomeRentOnly = "rent_only"
	OutcomeSqftOnly = "sqft_only"
	OutcomeNeither  = "neither"
)

// ClassificationOutcome maps the two rule flags to an outcome label.
func ClassificationOutcome(rentRule, sqftRule bool) string {
	switch {
	case rentRule && sqftRule:
		return OutcomeBoth
	case rentRule:
		return OutcomeRentOnly
	case sqftRule:
		return OutcomeSqftOnly
	default:
		return OutcomeNeither
	}
}

// RecordNonConverged counts each horizon whose IRR did not converge.
func RecordNonConverged(horizons []int) {
	for _, h := range horizons {
		IRRNonConverged.WithLabelValues(strconv.Itoa(h)).Inc()
	}
}
