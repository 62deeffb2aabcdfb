// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"rental-investment-workers/internal/common/aws"
	"rental-investment-workers/internal/common/camunda"
	"rental-investment-workers/internal/common/config"
	"rental-investment-workers/internal/common/database"
	"rental-investment-workers/internal/common/logger"
	"rental-investment-workers/internal/common/observability"
	"rental-investment-workers/internal/listings"
	"rental-investment-workers/internal/rentestimate"
	"rental-investment-workers/pkg/registry"

	cp "rental-investment-workers/internal/workers/investment/classify-property"
	er "rental-investment-workers/internal/workers/investment/estimate-rent"
	fcf "rental-investment-workers/internal/workers/investment/forecast-cash-flow"
	sl "rental-investment-workers/internal/workers/investment/search-listings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, zapLog)
	defer obs.Shutdown()

	ctx := context.Background()
	policy := database.DefaultRetryPolicy(log)

	// --- Zeebe ---
	zeebeClient, err := camunda.Connect(ctx, cfg.Camunda, camunda.DefaultRetryConfig, zapLog)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	pg, err := database.ConnectPostgres(ctx, cfg.Database.Postgres, policy)
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()

	pgStore := listings.NewPostgresStore(pg.DB)
	if err := pgStore.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("listings schema setup failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis ---
	redis, err := database.ConnectRedis(ctx, cfg.Database.Redis, policy)
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Elasticsearch (optional mirror and comparables source) ---
	var (
		esClient *database.ElasticsearchClient
		writers  = listings.Writers{pgStore}
		lookup   rentestimate.ComparablesLookup = pgStore
	)
	if cfg.Database.Elasticsearch.GetURL() != "" {
		esClient, err = database.ConnectElasticsearch(ctx, cfg.Database.Elasticsearch, policy)
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}

		esStore, err := listings.NewElasticsearchStore(esClient.Client, cfg.Database.Elasticsearch.ListingsIndex)
		if err != nil {
			zapLog.Fatal("elasticsearch store setup failed", zap.Error(err))
		}
		if err := esStore.EnsureIndex(ctx); err != nil {
			zapLog.Fatal("listings index setup failed", zap.Error(err))
		}

		writers = append(writers, esStore)
		if cfg.Investment.ComparablesSource == config.ComparablesFromElasticsearch {
			lookup = esStore
		}
		zapLog.Info("Elasticsearch connected successfully",
			zap.String("index", cfg.Database.Elasticsearch.ListingsIndex))
	}

	// --- Deal alerts ---
	alerts, err := newDealAlerts(ctx, cfg.Notifications)
	if err != nil {
		zapLog.Fatal("deal alert clients failed", zap.Error(err))
	}

	// --- Workers ---
	activities, err := registry.Default()
	if err != nil {
		zapLog.Fatal("activity registry failed", zap.Error(err))
	}

	var workers []*camunda.CamundaWorker
	start := func(taskType string, handler camunda.JobHandler) {
		activity, ok := activities.Lookup(taskType)
		if !ok {
			zapLog.Warn("worker has no registry entry", zap.String("taskType", taskType))
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		workers = append(workers, camunda.NewWorker(zeebeClient, taskType, wcfg, handler, obs, zapLog))
		zapLog.Info("worker started",
			zap.String("taskType", taskType),
			zap.String("activity", activity.DisplayName),
			zap.Strings("errorCodes", activity.ErrorCodes),
			zap.Int("maxJobsActive", wcfg.MaxJobsActive),
			zap.Int("timeout_ms", wcfg.Timeout),
		)
	}

	start(fcf.TaskType, fcf.NewHandler(
		&fcf.Config{
			Timeout:         handlerTimeout(cfg, fcf.TaskType),
			SaleCostPercent: cfg.Investment.SaleCostPercent,
			Defaults:        cfg.Investment.Defaults,
		},
		log,
	))

	start(er.TaskType, er.NewHandler(
		&er.Config{
			CacheTTL:          cfg.Investment.RentCacheTTL(),
			Timeout:           handlerTimeout(cfg, er.TaskType),
			ComparablesSource: cfg.Investment.ComparablesSource,
		},
		pgStore, lookup, redis.Client, log,
	))

	start(cp.TaskType, cp.NewHandler(
		&cp.Config{
			Timeout:       handlerTimeout(cfg, cp.TaskType),
			AlertsEnabled: cfg.Notifications.DealAlerts.Enabled,
		},
		writers, alerts, log,
	))

	start(sl.TaskType, sl.NewHandler(
		&sl.Config{
			Timeout:  handlerTimeout(cfg, sl.TaskType),
			PageSize: cfg.Investment.SearchPageSize,
		},
		pgStore, log,
	))

	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	checks := map[string]readinessCheck{
		"zeebe": func(ctx context.Context) error {
			return camunda.HealthCheck(ctx, zeebeClient, 2*time.Second)
		},
		"postgres": pg.Ping,
		"redis":    redis.Ping,
	}
	if esClient != nil {
		checks["elasticsearch"] = esClient.Ping
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.HealthPort),
		Handler:           newHealthMux(checks, zapLog),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	closeZeebe(zeebeClient, zapLog)

	zapLog.Info("Worker manager stopped gracefully")
}

// newDealAlerts builds the SNS channel and, when recipients are configured,
// the SES email channel. It returns nil when alerts are disabled.
func newDealAlerts(ctx context.Context, cfg config.NotificationConfig) (aws.AlertSender, error) {
	if !cfg.DealAlerts.Enabled {
		return nil, nil
	}

	snsClient, err := aws.NewSNSClient(ctx, cfg.AWS.Region, cfg.DealAlerts.TopicARN)
	if err != nil {
		return nil, err
	}
	senders := []aws.AlertSender{snsClient}

	if len(cfg.DealAlerts.EmailTo) > 0 {
		sesClient, err := aws.NewSESClient(ctx, cfg.AWS.Region, cfg.DealAlerts.EmailFrom, cfg.DealAlerts.EmailTo)
		if err != nil {
			return nil, err
		}
		senders = append(senders, sesClient)
	}
	return aws.NewDealAlerts(senders...), nil
}

// handlerTimeout bounds one job's work to the worker's activation timeout.
func handlerTimeout(cfg *config.Config, taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
}

func closeZeebe(client zbc.Client, log *zap.Logger) {
	if err := client.Close(); err != nil {
		log.Error("Error closing Zeebe client", zap.Error(err))
	}
}
