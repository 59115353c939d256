// Package main provides the entry point for the weekly simulation publisher.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/montecarlo"
	"github.com/yourusername/gridiron-edge/internal/profile"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/service"
	"github.com/yourusername/gridiron-edge/internal/sim"
	"github.com/yourusername/gridiron-edge/internal/tracing"
)

const profileCacheTTL = 15 * time.Minute

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		season     = flag.Int("season", 0, "Season to simulate")
		week       = flag.Int("week", 0, "Week to simulate")
		homeTeam   = flag.String("home", "", "Home team for a single-game run")
		awayTeam   = flag.String("away", "", "Away team for a single-game run")
	)
	flag.Parse()

	if *season == 0 || *week == 0 {
		log.Fatal("both -season and -week are required")
	}

	ctx := context.Background()
	cfg := loadConfigWithSecrets(*configPath)
	appLog := logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	if err := tracing.Initialize(tracing.Config{
		ServiceName: "gridiron-edge-simulate",
		Enabled:     cfg.Tracing.Enabled,
		DaemonAddr:  cfg.Tracing.DaemonAddr,
	}, appLog); err != nil {
		appLog.WithError(err).Fatal("Failed to initialize tracing")
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create repositories")
	}
	svc := buildPredictionService(cfg, repos, appLog)

	if *homeTeam != "" || *awayTeam != "" {
		if *homeTeam == "" || *awayTeam == "" {
			appLog.Fatal("both -home and -away are required for a single-game run")
		}
		runSingleGame(ctx, svc, repos, *season, *week, *homeTeam, *awayTeam, appLog)
		return
	}

	runCtx := ctx
	if cfg.Tracing.Enabled {
		var seg *xray.Segment
		runCtx, seg = tracing.StartSegment(ctx, "simulate-week")
		tracing.AddAnnotation(runCtx, "season", *season)
		tracing.AddAnnotation(runCtx, "week", *week)
		defer seg.Close(nil)
	}

	summary, err := svc.PredictWeek(runCtx, *season, *week)
	if err != nil {
		appLog.WithError(err).Fatal("Weekly simulation run failed")
	}

	appLog.WithFields(logrus.Fields{
		"season":    summary.Season,
		"week":      summary.Week,
		"games":     summary.Games,
		"published": summary.Published,
		"abstained": summary.Abstained,
		"duration":  summary.Duration.String(),
	}).Info("Weekly simulation run complete")
}

func runSingleGame(ctx context.Context, svc *service.PredictionService, repos *repository.Repositories, season, week int, homeTeam, awayTeam string, appLog *logrus.Logger) {
	lines, err := repos.MarketLine.LinesForWeek(ctx, season, week)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to load lines")
	}

	var line *models.MarketLine
	for _, l := range lines {
		if l.HomeTeam == homeTeam && l.AwayTeam == awayTeam {
			line = l
			break
		}
	}
	if line == nil {
		appLog.WithFields(logrus.Fields{
			"home_team": homeTeam,
			"away_team": awayTeam,
			"week":      week,
		}).Fatal("No posted line for matchup")
	}

	batch, err := svc.PredictGame(ctx, line)
	if err != nil {
		if models.IsDataUnavailable(err) {
			appLog.WithError(err).Warn("No prediction: required statistics unavailable")
			return
		}
		appLog.WithError(err).Fatal("Simulation failed")
	}

	appLog.WithFields(logrus.Fields{
		"home_team":        batch.HomeTeam,
		"away_team":        batch.AwayTeam,
		"predicted_margin": batch.PredictedMargin,
		"predicted_total":  batch.PredictedTotal,
		"home_win_prob":    batch.HomeWinProb,
		"conviction":       batch.Conviction,
		"trials":           batch.Trials,
		"full_confidence":  batch.FullConfidence(),
	}).Info("Published simulation batch")
}

func buildPredictionService(cfg *config.Config, repos *repository.Repositories, appLog *logrus.Logger) *service.PredictionService {
	builder, err := profile.NewBuilder(profile.FromAppConfig(&cfg.Simulation), repos.TeamStats, repos.Calibration, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create profile builder")
	}
	cached := profile.NewCachedBuilder(builder, profileCacheTTL, appLog)

	runner, err := montecarlo.NewRunner(montecarlo.FromAppConfig(&cfg.MonteCarlo), sim.FromAppConfig(&cfg.Simulation), appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create Monte Carlo runner")
	}

	return service.NewPredictionService(cached, runner, repos.MarketLine, repos.SimulationBatch, appLog)
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
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Invalid configuration for environment: %v", err)
	}
	return cfg
}
