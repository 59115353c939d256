package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// DataValidator validates feed payloads before they reach the database
type DataValidator struct {
	logger *logrus.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	return &DataValidator{logger: logger}
}

// ValidateTeamStats validates an efficiency snapshot for required fields and
// plausible ranges
func (v *DataValidator) ValidateTeamStats(stats *models.TeamWeekStats) []string {
	var errs []string

	if stats.TeamID == "" {
		errs = append(errs, "team_id is required")
	}
	if stats.Season <= 0 {
		errs = append(errs, "season is required")
	}
	if stats.Week <= 0 {
		errs = append(errs, "week is required")
	}

	errs = appendRateErrors(errs, map[string]float64{
		"off_success_rate":         stats.OffSuccessRate,
		"def_success_rate":         stats.DefSuccessRate,
		"giveaway_rate":            stats.GiveawayRate,
		"takeaway_rate":            stats.TakeawayRate,
		"red_zone_td_rate":         stats.RedZoneTDRate,
		"red_zone_td_rate_allowed": stats.RedZoneTDRateAllowed,
		"field_goal_pct":           stats.FieldGoalPct,
		"pass_rate":                stats.PassRate,
		"fourth_down_go_rate":      stats.FourthDownGoRate,
	})

	if stats.SecondsPerPlay <= 0 {
		errs = append(errs, "seconds_per_play must be positive")
	}

	// EPA per play beyond +/-1 means a corrupted snapshot, not a good team
	for name, epa := range map[string]float64{
		"off_epa_per_play": stats.OffEPAPerPlay,
		"def_epa_per_play": stats.DefEPAPerPlay,
	} {
		if epa < -1.0 || epa > 1.0 {
			errs = append(errs, fmt.Sprintf("%s out of range: %.3f", name, epa))
		}
	}

	return errs
}

// ValidateLine validates a market line
func (v *DataValidator) ValidateLine(line *models.MarketLine) []string {
	var errs []string

	if line.HomeTeam == "" {
		errs = append(errs, "home_team is required")
	}
	if line.AwayTeam == "" {
		errs = append(errs, "away_team is required")
	}
	if line.HomeTeam != "" && line.HomeTeam == line.AwayTeam {
		errs = append(errs, "home and away team must differ")
	}
	if line.Total.Sign() <= 0 {
		errs = append(errs, "total must be positive")
	}
	if line.Season <= 0 || line.Week <= 0 {
		errs = append(errs, "season and week are required")
	}

	return errs
}

// ValidateResult validates a final score
func (v *DataValidator) ValidateResult(result *models.GameResult) []string {
	var errs []string

	if result.HomeTeam == "" || result.AwayTeam == "" {
		errs = append(errs, "both teams are required")
	}
	if result.HomeScore < 0 || result.AwayScore < 0 {
		errs = append(errs, "scores must be non-negative")
	}
	if result.KickoffAt.IsZero() {
		errs = append(errs, "kickoff_at is required")
	}
	if result.Season <= 0 || result.Week <= 0 {
		errs = append(errs, "season and week are required")
	}

	return errs
}

func appendRateErrors(errs []string, rates map[string]float64) []string {
	for name, rate := range rates {
		if rate < 0 || rate > 1 {
			errs = append(errs, fmt.Sprintf("%s out of range: %.3f", name, rate))
		}
	}
	return errs
}
