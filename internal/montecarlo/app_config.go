package montecarlo

import (
	"time"

	"github.com/yourusername/gridiron-edge/internal/config"
)

// FromAppConfig maps the monte_carlo config section onto runner tuning.
// Zero-valued optional fields keep their defaults.
func FromAppConfig(cfg *config.MonteCarloConfig) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}

	if cfg.Trials > 0 {
		c.Trials = cfg.Trials
	}
	if cfg.MinTrials > 0 {
		c.MinTrials = cfg.MinTrials
	}
	if cfg.Workers > 0 {
		c.Workers = cfg.Workers
	}
	c.Seed = cfg.Seed
	if cfg.MaxDurationSeconds > 0 {
		c.MaxDuration = time.Duration(cfg.MaxDurationSeconds) * time.Second
	}
	if cfg.MaxDiscardRate > 0 {
		c.MaxDiscardRate = cfg.MaxDiscardRate
	}
	if cfg.HighEdgePoints > 0 {
		c.HighEdgePoints = cfg.HighEdgePoints
	}
	if cfg.LowEdgePoints > 0 {
		c.LowEdgePoints = cfg.LowEdgePoints
	}
	if cfg.MaxConvictionStdDev > 0 {
		c.MaxConvictionStdDev = cfg.MaxConvictionStdDev
	}

	return c
}
