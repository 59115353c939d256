// Package main provides the entry point for the stats feed ingestion service.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/health"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
	"github.com/yourusername/gridiron-edge/internal/service"
)

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		season       = flag.Int("season", 0, "Season to ingest")
		startWeek    = flag.Int("start-week", 0, "First week to ingest")
		endWeek      = flag.Int("end-week", 0, "Last week to ingest")
		pollInterval = flag.Int("poll", 0, "Run as a daemon, re-ingesting the latest week every N seconds")
	)
	flag.Parse()

	if *season == 0 {
		log.Fatal("-season is required")
	}
	if *startWeek == 0 {
		log.Fatal("-start-week is required")
	}
	if *endWeek == 0 {
		*endWeek = *startWeek
	}

	ctx := context.Background()
	cfg := loadConfigWithSecrets(*configPath)
	appLog := logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create repositories")
	}
	svc := buildIngestionService(cfg, repos, appLog)

	if *pollInterval > 0 {
		runDaemon(ctx, cfg, db, svc, *season, *endWeek, *pollInterval, appLog)
		return
	}

	if err := svc.IngestWeekRange(ctx, *season, *startWeek, *endWeek); err != nil {
		appLog.WithError(err).Fatal("Ingestion failed")
	}
	appLog.WithField("metrics", svc.GetMetrics().String()).Info("Ingestion complete")
}

func runDaemon(ctx context.Context, cfg *config.Config, db *database.DB, svc *service.IngestionService, season, week, pollInterval int, appLog *logrus.Logger) {
	sched := scheduler.NewScheduler(appLog)
	err := sched.ScheduleIngestionPolling(pollInterval, func(jobCtx context.Context) error {
		_, err := svc.IngestWeek(jobCtx, season, week)
		return err
	})
	if err != nil {
		appLog.WithError(err).Fatal("Failed to schedule ingestion")
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: "gridiron-edge-ingest",
		Metrics:     &cfg.Metrics,
		Logger:      appLog,
		DB:          db,
	})

	daemonCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := healthServer.Start(daemonCtx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	healthServer.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"season":        season,
		"week":          week,
		"poll_interval": pollInterval,
	}).Info("Ingestion daemon running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig.String()).Info("Shutdown signal received")

	healthServer.SetReady(false)
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Failed to stop scheduler cleanly")
	}
}

func buildIngestionService(cfg *config.Config, repos *repository.Repositories, appLog *logrus.Logger) *service.IngestionService {
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfigFromFeed(&cfg.StatsFeed), appLog)
	feed := datasource.NewHTTPStatsFeed(&cfg.StatsFeed, httpClient, appLog)

	return service.NewIngestionService(
		feed,
		repos.TeamStats,
		repos.Game,
		repos.MarketLine,
		service.NewDataValidator(appLog),
		service.NewDataNormalizer(appLog),
		appLog,
	)
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}
