package calibration

import "github.com/yourusername/gridiron-edge/internal/config"

// FromAppConfig maps the calibration config section onto calibrator tuning.
func FromAppConfig(cfg *config.CalibrationConfig) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}

	if cfg.WindowWeeks > 0 {
		c.WindowWeeks = cfg.WindowWeeks
	}
	if cfg.MinSampleWeeks > 0 {
		c.MinSampleWeeks = cfg.MinSampleWeeks
	}
	if cfg.MaterialityStdErrs > 0 {
		c.MaterialityStdErrs = cfg.MaterialityStdErrs
	}
	if cfg.Damping > 0 {
		c.Damping = cfg.Damping
	}
	if cfg.MaxCorrectionPoints > 0 {
		c.MaxCorrectionPoints = cfg.MaxCorrectionPoints
	}

	return c
}
