package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/gridiron-edge/internal/calibration"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// TeamStatsRepository defines the interface for team efficiency snapshots.
// TeamStatsAsOf satisfies the profile builder's stats source: it returns the
// latest snapshot strictly before asOfWeek, or models.ErrNotFound.
type TeamStatsRepository interface {
	Upsert(ctx context.Context, stats *models.TeamWeekStats) error
	UpsertBatch(ctx context.Context, stats []*models.TeamWeekStats) error
	TeamStatsAsOf(ctx context.Context, teamID string, season, asOfWeek int) (*models.TeamWeekStats, error)
}

// GameRepository defines the interface for played game results
type GameRepository interface {
	Create(ctx context.Context, game *models.GameResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GameResult, error)
	GamesForWeek(ctx context.Context, season, week int) ([]*models.GameResult, error)
	TeamsForSeason(ctx context.Context, season int) ([]string, error)
}

// MarketLineRepository defines the interface for market line data access
type MarketLineRepository interface {
	Upsert(ctx context.Context, line *models.MarketLine) error
	LineForGame(ctx context.Context, gameID uuid.UUID) (*models.MarketLine, error)
	LinesForWeek(ctx context.Context, season, week int) ([]*models.MarketLine, error)
}

// SimulationBatchRepository defines the interface for published batches.
// TeamObservations joins stored batches against played games to produce the
// calibration window, so bias is always measured on pre-game predictions.
type SimulationBatchRepository interface {
	Save(ctx context.Context, batch *models.SimulationBatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SimulationBatch, error)
	LatestForMatchup(ctx context.Context, homeTeam, awayTeam string, season, week int) (*models.SimulationBatch, error)
	TeamObservations(ctx context.Context, teamID string, season, beforeWeek, window int) ([]calibration.Observation, error)
}

// CalibrationRepository defines the interface for versioned corrections.
// ActiveCorrections satisfies the profile builder's calibration source and
// SaveRecords/NextVersion satisfy the calibrator's record store.
type CalibrationRepository interface {
	SaveRecords(ctx context.Context, records []*models.CalibrationRecord) error
	NextVersion(ctx context.Context, season, asOfWeek int) (int, error)
	ActiveCorrections(ctx context.Context, teamID string, season, asOfWeek int) ([]*models.CalibrationRecord, error)
	History(ctx context.Context, teamID string, season int) ([]*models.CalibrationRecord, error)
}

// BacktestRepository defines the interface for graded backtest records
type BacktestRepository interface {
	SaveRecords(ctx context.Context, records []*models.BacktestRecord) error
	GetBySeason(ctx context.Context, season int) ([]*models.BacktestRecord, error)
}
