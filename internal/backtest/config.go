package backtest

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/config"
)

// Config holds backtest run settings.
type Config struct {
	Season    int
	StartWeek int
	EndWeek   int

	// MinEdgePoints is the smallest model-vs-market gap that produces a
	// recommended bet. Below it a record grades NO_BET.
	MinEdgePoints float64

	OutputPath string
	ExportCSV  bool
}

// FromConfig converts app config to backtest config.
func FromConfig(cfg *config.BacktestConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("backtest config is required")
	}

	bt := Config{
		Season:        cfg.Season,
		StartWeek:     cfg.StartWeek,
		EndWeek:       cfg.EndWeek,
		MinEdgePoints: cfg.MinEdgePoints,
		OutputPath:    cfg.OutputPath,
		ExportCSV:     cfg.ExportCSV,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters.
func (c Config) Validate() error {
	if c.Season <= 0 {
		return fmt.Errorf("season must be positive")
	}
	if c.StartWeek < 1 {
		return fmt.Errorf("start week must be at least 1")
	}
	if c.EndWeek < c.StartWeek {
		return fmt.Errorf("end week must not precede start week")
	}
	if c.MinEdgePoints < 0 {
		return fmt.Errorf("min edge points cannot be negative")
	}
	return nil
}
