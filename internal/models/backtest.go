package models

import (
	"time"

	"github.com/google/uuid"
)

// BetGrade is the settled result of one recommended bet.
type BetGrade string

const (
	BetGradeWin  BetGrade = "WIN"
	BetGradeLoss BetGrade = "LOSS"
	// BetGradePush marks an exact tie against the line: a no-result with
	// zero profit or loss, never a win or a loss.
	BetGradePush  BetGrade = "PUSH"
	BetGradeNoBet BetGrade = "NO_BET"
)

// Spread pick sides and total pick sides.
const (
	PickHome  = "HOME"
	PickAway  = "AWAY"
	PickOver  = "OVER"
	PickUnder = "UNDER"
	PickNone  = "NONE"
)

// BacktestRecord is one graded historical game: predicted vs actual plus
// bet grading against placement and closing lines. At most one spread and
// one total recommendation exist per game.
type BacktestRecord struct {
	ID     uuid.UUID `db:"id" json:"id"`
	GameID uuid.UUID `db:"game_id" json:"game_id"`
	Season int       `db:"season" json:"season"`
	Week   int       `db:"week" json:"week"`

	HomeTeam string `db:"home_team" json:"home_team"`
	AwayTeam string `db:"away_team" json:"away_team"`

	PredictedMargin float64 `db:"predicted_margin" json:"predicted_margin"`
	ActualMargin    int     `db:"actual_margin" json:"actual_margin"`
	PredictedTotal  float64 `db:"predicted_total" json:"predicted_total"`
	ActualTotal     int     `db:"actual_total" json:"actual_total"`

	MarginError float64 `db:"margin_error" json:"margin_error"`
	TotalError  float64 `db:"total_error" json:"total_error"`

	Conviction ConvictionTier `db:"conviction" json:"conviction"`

	SpreadPick  string   `db:"spread_pick" json:"spread_pick"`
	SpreadGrade BetGrade `db:"spread_grade" json:"spread_grade"`
	TotalPick   string   `db:"total_pick" json:"total_pick"`
	TotalGrade  BetGrade `db:"total_grade" json:"total_grade"`

	// SpreadCLV/TotalCLV record whether the placement line beat the close.
	SpreadCLV bool `db:"spread_clv" json:"spread_clv"`
	TotalCLV  bool `db:"total_clv" json:"total_clv"`

	NoPrediction bool `db:"no_prediction" json:"no_prediction"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Recommended reports whether the record carries at least one bet.
func (r *BacktestRecord) Recommended() bool {
	return r.SpreadPick != PickNone || r.TotalPick != PickNone
}
