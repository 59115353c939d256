package models

import "time"

// GradeAbsent is the sentinel for an advanced grade the provider did not
// supply. Grades are on a 0-100 scale, so any non-positive value is absent.
const GradeAbsent float64 = -1

// UnitGradeSet holds advanced per-unit grades on a 0-100 scale.
// Individual fields may carry GradeAbsent when the provider has no grade
// for that unit.
type UnitGradeSet struct {
	PassBlock  float64 `db:"pass_block" json:"pass_block"`
	PassRush   float64 `db:"pass_rush" json:"pass_rush"`
	Coverage   float64 `db:"coverage" json:"coverage"`
	Receiving  float64 `db:"receiving" json:"receiving"`
	RunBlock   float64 `db:"run_block" json:"run_block"`
	RunDefense float64 `db:"run_defense" json:"run_defense"`
}

// TeamWeekStats is the raw per-team efficiency snapshot supplied by
// upstream collaborators, aggregated through the week before AsOfWeek.
type TeamWeekStats struct {
	TeamID string `db:"team_id" json:"team_id" validate:"required"`
	Season int    `db:"season" json:"season" validate:"required,gt=0"`
	Week   int    `db:"week" json:"week" validate:"required,gt=0"`

	OffEPAPerPlay     float64 `db:"off_epa_per_play" json:"off_epa_per_play"`
	DefEPAPerPlay     float64 `db:"def_epa_per_play" json:"def_epa_per_play"`
	OffPassEPAPerPlay float64 `db:"off_pass_epa_per_play" json:"off_pass_epa_per_play"`
	OffRushEPAPerPlay float64 `db:"off_rush_epa_per_play" json:"off_rush_epa_per_play"`
	DefPassEPAPerPlay float64 `db:"def_pass_epa_per_play" json:"def_pass_epa_per_play"`
	DefRushEPAPerPlay float64 `db:"def_rush_epa_per_play" json:"def_rush_epa_per_play"`

	OffSuccessRate float64 `db:"off_success_rate" json:"off_success_rate" validate:"gte=0,lte=1"`
	DefSuccessRate float64 `db:"def_success_rate" json:"def_success_rate" validate:"gte=0,lte=1"`

	GiveawayRate float64 `db:"giveaway_rate" json:"giveaway_rate" validate:"gte=0,lte=1"`
	TakeawayRate float64 `db:"takeaway_rate" json:"takeaway_rate" validate:"gte=0,lte=1"`

	RedZoneTDRate        float64 `db:"red_zone_td_rate" json:"red_zone_td_rate" validate:"gte=0,lte=1"`
	RedZoneTDRateAllowed float64 `db:"red_zone_td_rate_allowed" json:"red_zone_td_rate_allowed" validate:"gte=0,lte=1"`

	FieldGoalPct      float64 `db:"field_goal_pct" json:"field_goal_pct" validate:"gte=0,lte=1"`
	NetPuntAverage    float64 `db:"net_punt_average" json:"net_punt_average"`
	KickReturnAverage float64 `db:"kick_return_average" json:"kick_return_average"`

	SecondsPerPlay   float64 `db:"seconds_per_play" json:"seconds_per_play" validate:"gt=0"`
	PassRate         float64 `db:"pass_rate" json:"pass_rate" validate:"gte=0,lte=1"`
	FourthDownGoRate float64 `db:"fourth_down_go_rate" json:"fourth_down_go_rate" validate:"gte=0,lte=1"`

	// Grades is nil when the provider supplies no advanced grades at all;
	// presence toggles graded vs proxy profile construction.
	Grades *UnitGradeSet `db:"grades" json:"grades,omitempty"`

	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SituationalOverrides are optional game-context adjustments folded into
// profile construction as bounded multipliers.
type SituationalOverrides struct {
	// WeatherSeverity buckets: 0 none, 1 wind, 2 rain/snow, 3 severe.
	WeatherSeverity int `json:"weather_severity" validate:"gte=0,lte=3"`
	// ShortRest marks a team playing on fewer rest days than its opponent.
	ShortRest bool `json:"short_rest"`
	// InjurySeverity is a 0-1 score for key-player availability impact.
	InjurySeverity float64 `json:"injury_severity" validate:"gte=0,lte=1"`
}
