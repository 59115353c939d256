// Package main provides the calibration CLI: one-shot runs, the scheduled
// weekly daemon, and correction history inspection.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/calibration"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/health"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	season     int
	week       int
	teamID     string

	appLog *logrus.Logger
	cfg    *config.Config
	db     *database.DB
	repos  *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")

	runCmd.Flags().IntVar(&season, "season", 0, "Season to calibrate")
	runCmd.Flags().IntVar(&week, "week", 0, "As-of week for the run")
	runCmd.MarkFlagRequired("season")
	runCmd.MarkFlagRequired("week")

	scheduleCmd.Flags().IntVar(&season, "season", 0, "Season the scheduled runs calibrate")
	scheduleCmd.MarkFlagRequired("season")

	historyCmd.Flags().IntVar(&season, "season", 0, "Season to inspect")
	historyCmd.Flags().StringVar(&teamID, "team", "", "Team to inspect")
	historyCmd.MarkFlagRequired("season")
	historyCmd.MarkFlagRequired("team")

	rootCmd.AddCommand(runCmd, scheduleCmd, historyCmd)
}

var rootCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Weekly bias calibration for the game simulator",
	Long: `Measures simulated-versus-actual scoring bias per team over a rolling
window and writes damped, clamped corrections the profile builder applies
to future simulations.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupDependencies(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one calibration pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := runCalibration(cmd.Context(), season, week)
		if err != nil {
			return err
		}
		printSummary(summary)
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the weekly calibration daemon",
	Long:  `Registers the calibration pass on the configured cron schedule and serves health and metrics endpoints until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(cmd.Context())
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show a team's correction history",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := repos.Calibration.History(cmd.Context(), teamID, season)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(records) == 0 {
			fmt.Printf("No calibration records for %s in %d\n", teamID, season)
			return nil
		}
		fmt.Printf("%-6s %-18s %8s %8s %10s %8s\n", "Week", "Metric", "Bias", "Corr", "Samples", "Version")
		for _, rec := range records {
			fmt.Printf("%-6d %-18s %8.2f %8.2f %10d %8d\n",
				rec.AsOfWeek, rec.Metric, rec.Bias, rec.Correction, rec.SampleWeeks, rec.Version)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setupDependencies(ctx context.Context) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to create repositories: %w", err)
	}

	return nil
}

func runCalibration(ctx context.Context, season, asOfWeek int) (*calibration.Summary, error) {
	calibrator, err := calibration.NewCalibrator(
		calibration.FromAppConfig(&cfg.Calibration),
		repos.SimulationBatch,
		repos.Calibration,
		appLog,
	)
	if err != nil {
		return nil, err
	}

	teamIDs, err := repos.Game.TeamsForSeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if len(teamIDs) == 0 {
		return nil, fmt.Errorf("no played games for season %d", season)
	}

	return calibrator.RunWeek(ctx, season, asOfWeek, teamIDs)
}

func runDaemon(ctx context.Context) error {
	sched := scheduler.NewScheduler(appLog)
	err := sched.ScheduleWeeklyCalibration(cfg.Calibration.Schedule, func(jobCtx context.Context) error {
		asOfWeek, err := nextCalibrationWeek(jobCtx, season)
		if err != nil {
			return err
		}
		summary, err := runCalibration(jobCtx, season, asOfWeek)
		if err != nil {
			return err
		}
		appLog.WithFields(logrus.Fields{
			"season":             summary.Season,
			"week":               summary.Week,
			"version":            summary.Version,
			"records_written":    summary.RecordsWritten,
			"skipped_history":    summary.SkippedHistory,
			"skipped_immaterial": summary.SkippedImmaterial,
		}).Info("Scheduled calibration pass complete")
		return nil
	})
	if err != nil {
		return err
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: "gridiron-edge-calibrate",
		Version:     Version,
		Commit:      GitCommit,
		Metrics:     &cfg.Metrics,
		Logger:      appLog,
		DB:          db,
	})

	daemonCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := healthServer.Start(daemonCtx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}
	if err := sched.Start(); err != nil {
		return err
	}
	healthServer.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"schedule": cfg.Calibration.Schedule,
		"next_run": sched.GetNextRun(),
	}).Info("Calibration daemon running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig.String()).Info("Shutdown signal received")

	healthServer.SetReady(false)
	return sched.Stop()
}

// nextCalibrationWeek is the week after the latest week with a played game,
// so a Tuesday run calibrates on everything through the previous slate.
func nextCalibrationWeek(ctx context.Context, season int) (int, error) {
	lastPlayed := 0
	for w := 1; w <= 18; w++ {
		games, err := repos.Game.GamesForWeek(ctx, season, w)
		if err != nil {
			return 0, fmt.Errorf("failed to scan week %d: %w", w, err)
		}
		if len(games) > 0 {
			lastPlayed = w
		}
	}
	if lastPlayed == 0 {
		return 0, fmt.Errorf("no played games for season %d", season)
	}
	return lastPlayed + 1, nil
}

func printSummary(summary *calibration.Summary) {
	fmt.Printf("Calibration run complete\n")
	fmt.Printf("  Season:             %d\n", summary.Season)
	fmt.Printf("  As-of week:         %d\n", summary.Week)
	fmt.Printf("  Version:            %d\n", summary.Version)
	fmt.Printf("  Records written:    %d\n", summary.RecordsWritten)
	fmt.Printf("  Skipped (history):  %d\n", summary.SkippedHistory)
	fmt.Printf("  Skipped (bias):     %d\n", summary.SkippedImmaterial)
	fmt.Printf("  Duration:           %v\n", summary.Duration)
}
