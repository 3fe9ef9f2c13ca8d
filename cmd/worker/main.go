package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/metrics"
	wcfg "newsdesk/internal/pkg/config"
	"newsdesk/internal/repository"
)

// The maintenance worker purges used and expired password reset tokens on a
// cron schedule. It runs alongside the API server against the same database.

// workerConfig holds the maintenance worker settings loaded from environment.
type workerConfig struct {
	CronSchedule string
	Timezone     string
	PurgeTimeout time.Duration
}

var configMetrics = wcfg.NewConfigMetrics("worker")

// loadWorkerConfig loads the worker configuration with fail-open fallbacks.
// Invalid values never stop the worker, they log a warning and fall back to
// the defaults so the purge keeps running.
func loadWorkerConfig(logger *slog.Logger) workerConfig {
	cfg := workerConfig{}

	scheduleResult := wcfg.LoadEnvWithFallback("PURGE_CRON_SCHEDULE", "30 4 * * *", wcfg.ValidateCronSchedule)
	logFallback(logger, "cron_schedule", scheduleResult)
	cfg.CronSchedule = scheduleResult.Value.(string)

	tzResult := wcfg.LoadEnvWithFallback("WORKER_TIMEZONE", "UTC", wcfg.ValidateTimezone)
	logFallback(logger, "timezone", tzResult)
	cfg.Timezone = tzResult.Value.(string)

	timeoutResult := wcfg.LoadEnvDuration("PURGE_TIMEOUT", 1*time.Minute, wcfg.ValidatePositiveDuration)
	logFallback(logger, "purge_timeout", timeoutResult)
	cfg.PurgeTimeout = timeoutResult.Value.(time.Duration)

	configMetrics.RecordLoadTimestamp()
	return cfg
}

// logFallback logs configuration fallback warnings and updates config metrics.
func logFallback(logger *slog.Logger, field string, result wcfg.ConfigLoadResult) {
	if !result.FallbackApplied {
		configMetrics.SetFallbackActive(field, false)
		return
	}
	for _, warning := range result.Warnings {
		logger.Warn("configuration fallback", slog.String("field", field), slog.String("detail", warning))
	}
	configMetrics.RecordValidationError(field)
	configMetrics.RecordFallback(field, "invalid_value")
	configMetrics.SetFallbackActive(field, true)
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	cfg := loadWorkerConfig(logger)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("purge_timeout", cfg.PurgeTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startMetricsServer(ctx, logger)

	tokens := pgRepo.NewResetTokenRepo(database)
	runCronWorker(ctx, logger, tokens, cfg)
}

// initDatabase opens the database connection and waits for the API server's
// migrations to complete.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// waitForMigrations polls until the schema is present. The API server owns
// migrations, the worker only reads and deletes rows.
func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM password_reset_tokens LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// runCronWorker starts the cron scheduler and blocks until a shutdown signal.
func runCronWorker(ctx context.Context, logger *slog.Logger, tokens repository.ResetTokenRepository, cfg workerConfig) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runPurgeJob(ctx, logger, tokens, cfg.PurgeTimeout)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(cfg.PurgeTimeout):
		logger.Warn("purge job did not finish before shutdown deadline")
	}
	logger.Info("worker stopped")
}

// runPurgeJob deletes used and expired reset tokens in a single run.
func runPurgeJob(ctx context.Context, logger *slog.Logger, tokens repository.ResetTokenRepository, timeout time.Duration) {
	start := time.Now()
	logger.Info("reset token purge started")

	jobCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	purged, err := tokens.PurgeExpired(jobCtx)
	if err != nil {
		logger.Error("reset token purge failed", slog.Any("error", err))
		return
	}

	metrics.RecordResetTokensPurged(purged)
	logger.Info("reset token purge completed",
		slog.Int64("purged", purged),
		slog.Duration("duration", time.Since(start)))
}
