package sim

import "github.com/yourusername/gridiron-edge/internal/config"

// FromAppConfig maps the simulation config section onto orchestrator
// tuning, keeping defaults for everything the section does not expose.
func FromAppConfig(cfg *config.SimulationConfig) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}

	if cfg.MaxDrivePlays > 0 {
		c.MaxDrivePlays = cfg.MaxDrivePlays
	}
	if cfg.MaxGamePlays > 0 {
		c.MaxGamePlays = cfg.MaxGamePlays
	}

	return c
}
