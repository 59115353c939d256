package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

// ProfileSource builds team profiles as of a week
type ProfileSource interface {
	BuildProfile(ctx context.Context, teamID string, season, asOfWeek int, overrides *models.SituationalOverrides) (*models.TeamProfile, error)
}

// BatchRunner runs one Monte Carlo batch for a matchup
type BatchRunner interface {
	Run(ctx context.Context, home, away *models.TeamProfile, season, week int, line *models.MarketLine) (*models.SimulationBatch, error)
}

// WeekSummary reports the outcome of a weekly prediction run
type WeekSummary struct {
	Season    int
	Week      int
	Games     int
	Published int
	Abstained int
	Duration  time.Duration
}

// PredictionService publishes simulation batches for a week's slate. The
// posted market lines define the slate: one batch per line, built from
// profiles as of that week.
type PredictionService struct {
	profiles ProfileSource
	runner   BatchRunner
	lines    repository.MarketLineRepository
	batches  repository.SimulationBatchRepository
	logger   *logrus.Logger
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	profiles ProfileSource,
	runner BatchRunner,
	lines repository.MarketLineRepository,
	batches repository.SimulationBatchRepository,
	logger *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		profiles: profiles,
		runner:   runner,
		lines:    lines,
		batches:  batches,
		logger:   logger,
	}
}

// PredictGame builds both profiles and publishes one batch for a line.
// A missing-data abstention is surfaced to the caller unchanged so the
// weekly loop can count it rather than fail.
func (s *PredictionService) PredictGame(ctx context.Context, line *models.MarketLine) (*models.SimulationBatch, error) {
	home, err := s.profiles.BuildProfile(ctx, line.HomeTeam, line.Season, line.Week, nil)
	if err != nil {
		return nil, err
	}
	away, err := s.profiles.BuildProfile(ctx, line.AwayTeam, line.Season, line.Week, nil)
	if err != nil {
		return nil, err
	}

	batch, err := s.runner.Run(ctx, home, away, line.Season, line.Week, line)
	if err != nil {
		return nil, fmt.Errorf("simulation failed for %s @ %s: %w", line.AwayTeam, line.HomeTeam, err)
	}

	if err := s.batches.Save(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to save batch: %w", err)
	}

	return batch, nil
}

// PredictWeek publishes batches for every posted line of a week
func (s *PredictionService) PredictWeek(ctx context.Context, season, week int) (*WeekSummary, error) {
	startTime := time.Now()

	lines, err := s.lines.LinesForWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines: %w", err)
	}

	summary := &WeekSummary{Season: season, Week: week, Games: len(lines)}
	for _, line := range lines {
		batch, err := s.PredictGame(ctx, line)
		if err != nil {
			if models.IsDataUnavailable(err) {
				summary.Abstained++
				s.logger.WithFields(logrus.Fields{
					"home_team": line.HomeTeam,
					"away_team": line.AwayTeam,
					"week":      week,
					"reason":    err.Error(),
				}).Warn("No prediction published for game")
				continue
			}
			return summary, err
		}

		summary.Published++
		s.logger.WithFields(logrus.Fields{
			"home_team":        batch.HomeTeam,
			"away_team":        batch.AwayTeam,
			"predicted_margin": batch.PredictedMargin,
			"predicted_total":  batch.PredictedTotal,
			"conviction":       batch.Conviction,
			"full_confidence":  batch.FullConfidence(),
		}).Info("Published simulation batch")
	}

	summary.Duration = time.Since(startTime)
	return summary, nil
}
