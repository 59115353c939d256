package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrGradeMissing       = errors.New("advanced unit grades missing")
	ErrInsufficientSample = errors.New("batch below minimum trial count")
	ErrCalibrationSkipped = errors.New("insufficient history for calibration")
	ErrInvalidLine        = errors.New("market line is invalid")
)

// DataUnavailableError indicates no statistics exist for a team/week.
// It is a hard error: profile construction must abort and surface
// "no prediction" rather than default to a league-average team.
type DataUnavailableError struct {
	TeamID string
	Season int
	Week   int
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("no statistics available for team %s season %d week %d", e.TeamID, e.Season, e.Week)
}

// IsDataUnavailable reports whether err wraps a DataUnavailableError.
func IsDataUnavailable(err error) bool {
	var target *DataUnavailableError
	return errors.As(err, &target)
}

// DivergenceError indicates a trial exceeded the game safety bound.
// Diverged trials are discarded and counted, never published.
type DivergenceError struct {
	Trial int
	Plays int
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("trial %d diverged after %d plays", e.Trial, e.Plays)
}
