package models

import (
	"time"

	"github.com/google/uuid"
)

// DriveOutcome is the terminal event of a simulated possession.
type DriveOutcome string

const (
	DriveTouchdown       DriveOutcome = "touchdown"
	DriveFieldGoal       DriveOutcome = "field_goal"
	DriveMissedFieldGoal DriveOutcome = "missed_field_goal"
	DrivePunt            DriveOutcome = "punt"
	DriveTurnover        DriveOutcome = "turnover"
	DriveTurnoverOnDowns DriveOutcome = "turnover_on_downs"
	DriveSafety          DriveOutcome = "safety"
	DriveEndOfHalf       DriveOutcome = "end_of_half"
)

// Points returns the points the offense scored on the drive outcome.
// Safeties score for the defense and are accounted by the orchestrator.
func (o DriveOutcome) Points() int {
	switch o {
	case DriveTouchdown:
		return 7
	case DriveFieldGoal:
		return 3
	}
	return 0
}

// PlayEvent is one sampled play within a drive. Completed is only
// meaningful for pass plays; a completed pass can still gain zero yards.
type PlayEvent struct {
	Type      string  `json:"type"`
	Yards     int     `json:"yards"`
	EPA       float64 `json:"epa"`
	Completed bool    `json:"completed"`
	Pressure  bool    `json:"pressure"`
	Sack      bool    `json:"sack"`
	Turnover  bool    `json:"turnover"`
	Explosive bool    `json:"explosive"`
}

// DriveResult is the ordered play log and terminal outcome of one drive.
type DriveResult struct {
	Events        []PlayEvent  `json:"events"`
	Outcome       DriveOutcome `json:"outcome"`
	StartYardLine int          `json:"start_yard_line"`
	EPATotal      float64      `json:"epa_total"`
}

// Plays returns the number of plays run on the drive.
func (d DriveResult) Plays() int { return len(d.Events) }

// SimulationTrial is one complete realized game, the unit collected by the
// Monte Carlo runner.
type SimulationTrial struct {
	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`

	TotalPlays int  `json:"total_plays"`
	Overtime   bool `json:"overtime"`
	Diverged   bool `json:"diverged"`

	HomePassPlays        int `json:"home_pass_plays"`
	AwayPassPlays        int `json:"away_pass_plays"`
	HomePressuresAllowed int `json:"home_pressures_allowed"`
	AwayPressuresAllowed int `json:"away_pressures_allowed"`

	HomeEPA float64 `json:"home_epa"`
	AwayEPA float64 `json:"away_epa"`
}

// Margin returns home score minus away score.
func (t SimulationTrial) Margin() int { return t.HomeScore - t.AwayScore }

// Total returns the combined final score.
func (t SimulationTrial) Total() int { return t.HomeScore + t.AwayScore }

// GameResult is an actual historical final, used by calibration and the
// backtest harness.
type GameResult struct {
	GameID    uuid.UUID `db:"game_id" json:"game_id"`
	Season    int       `db:"season" json:"season"`
	Week      int       `db:"week" json:"week"`
	HomeTeam  string    `db:"home_team" json:"home_team"`
	AwayTeam  string    `db:"away_team" json:"away_team"`
	HomeScore int       `db:"home_score" json:"home_score"`
	AwayScore int       `db:"away_score" json:"away_score"`
	KickoffAt time.Time `db:"kickoff_at" json:"kickoff_at"`
}

// Margin returns home score minus away score.
func (g GameResult) Margin() int { return g.HomeScore - g.AwayScore }

// Total returns the combined final score.
func (g GameResult) Total() int { return g.HomeScore + g.AwayScore }
