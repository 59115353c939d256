// Package main provides the entry point for the backtest harness CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/backtest"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/montecarlo"
	"github.com/yourusername/gridiron-edge/internal/profile"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/sim"
	"github.com/yourusername/gridiron-edge/internal/tracing"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		season     = flag.Int("season", 0, "Override season to replay")
		startWeek  = flag.Int("start-week", 0, "Override first week")
		endWeek    = flag.Int("end-week", 0, "Override last week")
		minEdge    = flag.Float64("min-edge", 0, "Override minimum edge in points")
		output     = flag.String("output", "", "Override CSV output path")
		noPersist  = flag.Bool("no-persist", false, "Skip writing graded records to the database")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := loadConfigWithSecrets(*configPath)
	appLog := logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	if err := tracing.Initialize(tracing.Config{
		ServiceName: "gridiron-edge-backtest",
		Enabled:     cfg.Tracing.Enabled,
		DaemonAddr:  cfg.Tracing.DaemonAddr,
	}, appLog); err != nil {
		appLog.WithError(err).Fatal("Failed to initialize tracing")
	}

	btCfg := buildBacktestConfig(cfg, *season, *startWeek, *endWeek, *minEdge, *output, appLog)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create repositories")
	}
	harness := buildHarness(cfg, btCfg, repos, *noPersist, appLog)

	appLog.WithFields(logrus.Fields{
		"season":     btCfg.Season,
		"start_week": btCfg.StartWeek,
		"end_week":   btCfg.EndWeek,
	}).Info("Starting backtest")

	runCtx := ctx
	if cfg.Tracing.Enabled {
		var seg *xray.Segment
		runCtx, seg = tracing.StartSegment(ctx, "backtest-run")
		tracing.AddAnnotation(runCtx, "season", btCfg.Season)
		defer seg.Close(nil)
	}

	report, records, err := harness.Run(runCtx)
	if err != nil {
		appLog.WithError(err).Fatal("Backtest failed")
	}

	fmt.Print(backtest.GenerateConsoleReport(report))

	if btCfg.ExportCSV && btCfg.OutputPath != "" {
		if err := backtest.GenerateCSVExport(report, btCfg.OutputPath); err != nil {
			appLog.WithError(err).Error("Failed to write CSV export")
		} else {
			appLog.WithField("path", btCfg.OutputPath).Info("Wrote CSV export")
		}
	}

	appLog.WithFields(logrus.Fields{
		"games":      report.Games,
		"records":    len(records),
		"margin_mae": report.MarginMAE,
		"ats_rate":   report.ATSRate,
	}).Info("Backtest complete")
}

func buildBacktestConfig(cfg *config.Config, season, startWeek, endWeek int, minEdge float64, output string, appLog *logrus.Logger) backtest.Config {
	btCfg, err := backtest.FromConfig(&cfg.Backtest)
	if err != nil {
		appLog.WithError(err).Fatal("Invalid backtest config")
	}
	if season > 0 {
		btCfg.Season = season
	}
	if startWeek > 0 {
		btCfg.StartWeek = startWeek
	}
	if endWeek > 0 {
		btCfg.EndWeek = endWeek
	}
	if minEdge > 0 {
		btCfg.MinEdgePoints = minEdge
	}
	if output != "" {
		btCfg.OutputPath = output
		btCfg.ExportCSV = true
	}
	if err := btCfg.Validate(); err != nil {
		appLog.WithError(err).Fatal("Invalid backtest config")
	}
	return btCfg
}

func buildHarness(cfg *config.Config, btCfg backtest.Config, repos *repository.Repositories, noPersist bool, appLog *logrus.Logger) *backtest.Harness {
	builder, err := profile.NewBuilder(profile.FromAppConfig(&cfg.Simulation), repos.TeamStats, repos.Calibration, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create profile builder")
	}

	runner, err := montecarlo.NewRunner(montecarlo.FromAppConfig(&cfg.MonteCarlo), sim.FromAppConfig(&cfg.Simulation), appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create Monte Carlo runner")
	}

	var store backtest.RecordStore
	if !noPersist {
		store = repos.Backtest
	}

	harness, err := backtest.NewHarness(btCfg, builder, runner, repos.Game, repos.MarketLine, store, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create backtest harness")
	}
	return harness
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
