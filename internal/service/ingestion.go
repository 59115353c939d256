package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

// IngestionService pulls one week of feed data and persists it. Snapshots,
// lines, and results are loaded independently: a week without results is a
// week that has not been played yet, not an error.
type IngestionService struct {
	feed       datasource.StatsFeed
	teamStats  repository.TeamStatsRepository
	games      repository.GameRepository
	lines      repository.MarketLineRepository
	validator  *DataValidator
	normalizer *DataNormalizer
	metrics    *IngestionMetrics
	logger     *logrus.Logger
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	feed datasource.StatsFeed,
	teamStats repository.TeamStatsRepository,
	games repository.GameRepository,
	lines repository.MarketLineRepository,
	validator *DataValidator,
	normalizer *DataNormalizer,
	logger *logrus.Logger,
) *IngestionService {
	return &IngestionService{
		feed:       feed,
		teamStats:  teamStats,
		games:      games,
		lines:      lines,
		validator:  validator,
		normalizer: normalizer,
		metrics:    NewIngestionMetrics(),
		logger:     logger,
	}
}

// IngestWeek fetches and persists one season week
func (s *IngestionService) IngestWeek(ctx context.Context, season, week int) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	s.logger.WithFields(logrus.Fields{
		"feed":   s.feed.Name(),
		"season": season,
		"week":   week,
	}).Info("Starting week ingestion")

	if err := s.ingestTeamStats(ctx, season, week); err != nil {
		s.metrics.RecordError()
		return s.metrics, err
	}
	if err := s.ingestLines(ctx, season, week); err != nil {
		s.metrics.RecordError()
		return s.metrics, err
	}
	if err := s.ingestResults(ctx, season, week); err != nil {
		s.metrics.RecordError()
		return s.metrics, err
	}

	s.metrics.Duration = time.Since(startTime)
	s.logger.WithFields(logrus.Fields{
		"season":  season,
		"week":    week,
		"summary": s.metrics.String(),
	}).Info("Week ingestion complete")

	return s.metrics, nil
}

// IngestWeekRange fetches and persists a span of weeks, continuing past
// per-week failures so one bad payload does not abort a season load
func (s *IngestionService) IngestWeekRange(ctx context.Context, season, startWeek, endWeek int) error {
	var failed int
	for week := startWeek; week <= endWeek; week++ {
		if _, err := s.IngestWeek(ctx, season, week); err != nil {
			failed++
			s.logger.WithFields(logrus.Fields{
				"season": season,
				"week":   week,
				"error":  err.Error(),
			}).Error("Week ingestion failed")
		}
	}

	if failed > 0 {
		return fmt.Errorf("ingestion failed for %d of %d weeks", failed, endWeek-startWeek+1)
	}
	return nil
}

func (s *IngestionService) ingestTeamStats(ctx context.Context, season, week int) error {
	snapshots, err := s.feed.TeamStatsForWeek(ctx, season, week)
	if err != nil {
		if datasource.IsNotFound(err) {
			s.logger.WithFields(logrus.Fields{"season": season, "week": week}).
				Warn("No team stats published for week")
			return nil
		}
		return fmt.Errorf("failed to fetch team stats: %w", err)
	}

	valid := make([]*models.TeamWeekStats, 0, len(snapshots))
	for _, snap := range snapshots {
		s.normalizer.NormalizeTeamStats(snap)
		if errs := s.validator.ValidateTeamStats(snap); len(errs) > 0 {
			s.metrics.RecordValidationError()
			s.logger.WithFields(logrus.Fields{
				"team_id": snap.TeamID,
				"errors":  errs,
			}).Warn("Rejected team stats snapshot")
			continue
		}
		valid = append(valid, snap)
	}

	if len(valid) == 0 {
		return nil
	}
	if err := s.teamStats.UpsertBatch(ctx, valid); err != nil {
		return fmt.Errorf("failed to persist team stats: %w", err)
	}
	s.metrics.RecordTeamStats(len(valid))

	return nil
}

func (s *IngestionService) ingestLines(ctx context.Context, season, week int) error {
	lines, err := s.feed.LinesForWeek(ctx, season, week)
	if err != nil {
		if datasource.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to fetch lines: %w", err)
	}

	for _, line := range lines {
		s.normalizer.NormalizeLine(line)
		if errs := s.validator.ValidateLine(line); len(errs) > 0 {
			s.metrics.RecordValidationError()
			s.logger.WithFields(logrus.Fields{
				"home_team": line.HomeTeam,
				"away_team": line.AwayTeam,
				"errors":    errs,
			}).Warn("Rejected market line")
			continue
		}
		if err := s.lines.Upsert(ctx, line); err != nil {
			s.metrics.RecordError()
			s.logger.WithFields(logrus.Fields{
				"game_id": line.GameID,
				"error":   err.Error(),
			}).Error("Failed to persist market line")
			continue
		}
		s.metrics.RecordLine()
	}

	return nil
}

func (s *IngestionService) ingestResults(ctx context.Context, season, week int) error {
	results, err := s.feed.ResultsForWeek(ctx, season, week)
	if err != nil {
		if datasource.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to fetch results: %w", err)
	}

	for _, result := range results {
		s.normalizer.NormalizeResult(result)
		if errs := s.validator.ValidateResult(result); len(errs) > 0 {
			s.metrics.RecordValidationError()
			s.logger.WithFields(logrus.Fields{
				"home_team": result.HomeTeam,
				"away_team": result.AwayTeam,
				"errors":    errs,
			}).Warn("Rejected game result")
			continue
		}
		if err := s.games.Create(ctx, result); err != nil {
			s.metrics.RecordError()
			s.logger.WithFields(logrus.Fields{
				"game_id": result.GameID,
				"error":   err.Error(),
			}).Error("Failed to persist game result")
			continue
		}
		s.metrics.RecordResult()
	}

	return nil
}

// GetMetrics returns the most recent run's metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}
