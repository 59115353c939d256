package profile

import "github.com/yourusername/gridiron-edge/internal/config"

// FromAppConfig maps the simulation config section onto builder tuning.
func FromAppConfig(cfg *config.SimulationConfig) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}

	if cfg.HomeFieldPoints > 0 {
		c.HomeFieldPoints = cfg.HomeFieldPoints
	}

	return c
}
