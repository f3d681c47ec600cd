package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"arenasync/internal/config"
	"arenasync/internal/core"
	"arenasync/internal/leaderboard"
	logpkg "arenasync/internal/log"
	"arenasync/internal/metrics"
	"arenasync/internal/process"
	"arenasync/internal/storage"
	"arenasync/internal/updater"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	dotenvErr := godotenv.Load()

	logger := logpkg.CreateLogger()
	defer func() {
		if appLog, ok := logger.(*logpkg.AppLogger); ok {
			_ = appLog.Close()
		}
	}()

	if dotenvErr != nil {
		logger.Warn("No .env file found, using system environment variables")
	}

	cfg := config.LoadConfigFromEnv(logger)

	store := storage.InitStorage(cfg.RedisURL, cfg.HistoryPath, logger)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	metricsService := metrics.NewMetricsService(metrics.MetricsConfig{
		Storage: store,
		Logger:  logger,
	})

	fetcher := leaderboard.NewFetcher(leaderboard.FetcherConfig{
		APIURL:     cfg.ArenaAPIURL,
		PageURL:    cfg.PageURL,
		TopN:       cfg.TopN,
		Timeout:    cfg.FetchTimeout,
		HTTPClient: config.NewHTTPClient(cfg.HTTPClientSettings),
		Metrics:    metricsService,
		Logger:     logger,
	})

	runner := process.NewRunner(process.RunnerConfig{
		Config:  cfg,
		Fetcher: fetcher,
		Updater: updater.NewUpdater(cfg.BuiltinEndpoints, logger),
		Metrics: metricsService,
		Logger:  logger,
		Output:  os.Stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := runner.Run(ctx)
	if code != core.ExitOK {
		logger.Debug("Run finished with exit code %d", code)
	}
	return code
}
