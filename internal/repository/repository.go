package repository

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	TeamStats       TeamStatsRepository
	Game            GameRepository
	MarketLine      MarketLineRepository
	SimulationBatch SimulationBatchRepository
	Calibration     CalibrationRepository
	Backtest        BacktestRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		TeamStats:       NewPostgresTeamStatsRepository(db),
		Game:            NewPostgresGameRepository(db),
		MarketLine:      NewPostgresMarketLineRepository(db),
		SimulationBatch: NewPostgresSimulationBatchRepository(db),
		Calibration:     NewPostgresCalibrationRepository(db),
		Backtest:        NewPostgresBacktestRepository(db),
	}, nil
}
