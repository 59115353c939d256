// Package backtest replays historical seasons week by week and grades model
// recommendations against the lines that were actually on offer.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// ProfileSource builds team profiles from data strictly before the as-of week.
type ProfileSource interface {
	BuildProfile(ctx context.Context, teamID string, season, asOfWeek int, overrides *models.SituationalOverrides) (*models.TeamProfile, error)
}

// BatchRunner produces a simulation batch for one matchup.
type BatchRunner interface {
	Run(ctx context.Context, home, away *models.TeamProfile, season, week int, line *models.MarketLine) (*models.SimulationBatch, error)
}

// GameSource provides played games for a week.
type GameSource interface {
	GamesForWeek(ctx context.Context, season, week int) ([]*models.GameResult, error)
}

// LineSource provides the market line for a game.
type LineSource interface {
	LineForGame(ctx context.Context, gameID uuid.UUID) (*models.MarketLine, error)
}

// RecordStore persists graded records. A nil store skips persistence.
type RecordStore interface {
	SaveRecords(ctx context.Context, records []*models.BacktestRecord) error
}

// Harness orchestrates a no-look-ahead historical replay. Each game is
// predicted with profiles built as of its own week, which the profile source
// derives from stats through the prior week only.
type Harness struct {
	cfg      Config
	profiles ProfileSource
	runner   BatchRunner
	games    GameSource
	lines    LineSource
	store    RecordStore
	logger   *logrus.Logger
}

// NewHarness creates a backtest harness.
func NewHarness(cfg Config, profiles ProfileSource, runner BatchRunner, games GameSource, lines LineSource, store RecordStore, logger *logrus.Logger) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backtest config: %w", err)
	}
	if profiles == nil || runner == nil || games == nil || lines == nil {
		return nil, fmt.Errorf("profile source, runner, game source, and line source are required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Harness{
		cfg:      cfg,
		profiles: profiles,
		runner:   runner,
		games:    games,
		lines:    lines,
		store:    store,
		logger:   logger,
	}, nil
}

// Run replays the configured week range and returns the graded report.
func (h *Harness) Run(ctx context.Context) (*Report, []*models.BacktestRecord, error) {
	started := time.Now()

	h.logger.WithFields(logrus.Fields{
		"season":     h.cfg.Season,
		"start_week": h.cfg.StartWeek,
		"end_week":   h.cfg.EndWeek,
	}).Info("Starting backtest run")

	var records []*models.BacktestRecord
	for week := h.cfg.StartWeek; week <= h.cfg.EndWeek; week++ {
		games, err := h.games.GamesForWeek(ctx, h.cfg.Season, week)
		if err != nil {
			metrics.RecordBacktestRun("failure")
			return nil, nil, fmt.Errorf("failed to load games for week %d: %w", week, err)
		}

		for _, game := range games {
			rec, err := h.processGame(ctx, game)
			if err != nil {
				metrics.RecordBacktestRun("failure")
				return nil, nil, err
			}
			if rec != nil {
				records = append(records, rec)
			}
		}
	}

	if h.store != nil && len(records) > 0 {
		if err := h.store.SaveRecords(ctx, records); err != nil {
			metrics.RecordBacktestRun("failure")
			return nil, nil, fmt.Errorf("failed to save backtest records: %w", err)
		}
	}

	report := BuildReport(h.cfg.Season, records)
	report.Duration = time.Since(started)

	metrics.RecordBacktestRun("success")
	metrics.BacktestDuration.Observe(report.Duration.Seconds())
	season := strconv.Itoa(h.cfg.Season)
	metrics.UpdateBacktestMarginMAE(season, report.MarginMAE)
	for tier, tm := range report.ByTier {
		metrics.UpdateBacktestATSRate(season, string(tier), tm.ATSRate)
	}

	h.logger.WithFields(logrus.Fields{
		"games":      report.Games,
		"margin_mae": report.MarginMAE,
		"total_mae":  report.TotalMAE,
		"ats_rate":   report.ATSRate,
		"duration":   report.Duration,
	}).Info("Backtest run complete")

	return report, records, nil
}

// processGame predicts and grades one game. Games whose line never made it
// into the book are skipped rather than graded against nothing.
func (h *Harness) processGame(ctx context.Context, game *models.GameResult) (*models.BacktestRecord, error) {
	line, err := h.lines.LineForGame(ctx, game.GameID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.logger.WithFields(logrus.Fields{
				"game_id": game.GameID,
				"week":    game.Week,
			}).Warn("No market line recorded, skipping game")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load line for game %s: %w", game.GameID, err)
	}

	rec := &models.BacktestRecord{
		ID:           uuid.New(),
		GameID:       game.GameID,
		Season:       game.Season,
		Week:         game.Week,
		HomeTeam:     game.HomeTeam,
		AwayTeam:     game.AwayTeam,
		ActualMargin: game.Margin(),
		ActualTotal:  game.Total(),
		SpreadPick:   models.PickNone,
		SpreadGrade:  models.BetGradeNoBet,
		TotalPick:    models.PickNone,
		TotalGrade:   models.BetGradeNoBet,
		Conviction:   models.ConvictionLow,
		CreatedAt:    time.Now().UTC(),
	}

	home, err := h.profiles.BuildProfile(ctx, game.HomeTeam, game.Season, game.Week, nil)
	if err == nil {
		var away *models.TeamProfile
		away, err = h.profiles.BuildProfile(ctx, game.AwayTeam, game.Season, game.Week, nil)
		if err == nil {
			return h.grade(ctx, rec, home, away, game, line)
		}
	}

	if models.IsDataUnavailable(err) {
		rec.NoPrediction = true
		h.logger.WithFields(logrus.Fields{
			"game_id": game.GameID,
			"week":    game.Week,
		}).Info("Profile data unavailable, recording abstention")
		return rec, nil
	}
	return nil, fmt.Errorf("failed to build profiles for game %s: %w", game.GameID, err)
}

func (h *Harness) grade(ctx context.Context, rec *models.BacktestRecord, home, away *models.TeamProfile, game *models.GameResult, line *models.MarketLine) (*models.BacktestRecord, error) {
	batch, err := h.runner.Run(ctx, home, away, game.Season, game.Week, line)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate game %s: %w", game.GameID, err)
	}

	rec.PredictedMargin = batch.PredictedMargin
	rec.PredictedTotal = batch.PredictedTotal
	rec.MarginError = batch.PredictedMargin - float64(game.Margin())
	rec.TotalError = batch.PredictedTotal - float64(game.Total())
	rec.Conviction = batch.Conviction

	rec.SpreadPick = pickSpread(batch, line, h.cfg.MinEdgePoints)
	rec.SpreadGrade = gradeSpread(rec.SpreadPick, game.Margin(), line.Spread)
	rec.SpreadCLV = spreadCLV(rec.SpreadPick, line.Spread, line.ClosingSpread)

	rec.TotalPick = pickTotal(batch, line, h.cfg.MinEdgePoints)
	rec.TotalGrade = gradeTotal(rec.TotalPick, game.Total(), line.Total)
	rec.TotalCLV = totalCLV(rec.TotalPick, line.Total, line.ClosingTotal)

	return rec, nil
}
