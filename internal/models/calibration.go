package models

import (
	"time"

	"github.com/google/uuid"
)

// Calibrated metric names. Biases are measured in points per game and the
// profile builder converts corrections to per-play EPA shifts.
const (
	MetricPointsScored  = "points_scored"
	MetricPointsAllowed = "points_allowed"
)

// CalibrationRecord is a versioned correction keyed by (team, metric,
// as-of-week). Records are written once by the weekly calibration pass and
// applied to profile construction for subsequent weeks only, so any week's
// simulation can be reproduced exactly from the snapshot active then.
type CalibrationRecord struct {
	ID       uuid.UUID `db:"id" json:"id"`
	TeamID   string    `db:"team_id" json:"team_id" validate:"required"`
	Metric   string    `db:"metric" json:"metric" validate:"required"`
	Season   int       `db:"season" json:"season"`
	AsOfWeek int       `db:"as_of_week" json:"as_of_week"`

	// Bias is simulated mean minus actual mean over the rolling window,
	// in points per game. Correction is the damped, clamped delta applied
	// going forward.
	Bias        float64 `db:"bias" json:"bias"`
	Correction  float64 `db:"correction" json:"correction"`
	SampleWeeks int     `db:"sample_weeks" json:"sample_weeks"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
