package models

// Unit identifies one gradeable unit of a team.
type Unit string

const (
	UnitPassBlock  Unit = "pass_block"
	UnitPassRush   Unit = "pass_rush"
	UnitCoverage   Unit = "coverage"
	UnitReceiving  Unit = "receiving"
	UnitRunBlock   Unit = "run_block"
	UnitRunDefense Unit = "run_defense"
)

// UnitGrades exposes per-unit grades on a 0-100 scale. The second return
// value reports whether a grade exists for the unit; matchup resolution
// treats a missing grade on either side as a zero mismatch.
type UnitGrades interface {
	Grade(u Unit) (float64, bool)
	// Graded reports whether the grades come from an advanced provider
	// rather than efficiency-based proxies.
	Graded() bool
}

// GradedUnits wraps provider-supplied advanced grades. Individual absent
// grades report ok=false and fall through to zero mismatch.
type GradedUnits struct {
	Set UnitGradeSet
}

func (g GradedUnits) Grade(u Unit) (float64, bool) {
	var v float64
	switch u {
	case UnitPassBlock:
		v = g.Set.PassBlock
	case UnitPassRush:
		v = g.Set.PassRush
	case UnitCoverage:
		v = g.Set.Coverage
	case UnitReceiving:
		v = g.Set.Receiving
	case UnitRunBlock:
		v = g.Set.RunBlock
	case UnitRunDefense:
		v = g.Set.RunDefense
	default:
		return 0, false
	}
	if v <= 0 {
		return 0, false
	}
	return v, true
}

func (g GradedUnits) Graded() bool { return true }

// ProxyUnits substitutes efficiency-based stand-ins when advanced grades
// are absent. Every unit resolves, so proxy teams still produce matchup
// deltas, just lower-fidelity ones.
type ProxyUnits struct {
	Offense float64 // derived from offensive success rate
	Defense float64 // derived from defensive success rate
}

func (p ProxyUnits) Grade(u Unit) (float64, bool) {
	switch u {
	case UnitPassBlock, UnitReceiving, UnitRunBlock:
		return p.Offense, true
	case UnitPassRush, UnitCoverage, UnitRunDefense:
		return p.Defense, true
	}
	return 0, false
}

func (p ProxyUnits) Graded() bool { return false }

// TeamProfile is the per-team, per-as-of-week rating snapshot consumed by
// the simulator. Built once per team per week and immutable afterward.
type TeamProfile struct {
	TeamID   string `json:"team_id"`
	Season   int    `json:"season"`
	AsOfWeek int    `json:"as_of_week"`

	OffEPAPerPlay     float64 `json:"off_epa_per_play"`
	DefEPAPerPlay     float64 `json:"def_epa_per_play"`
	OffPassEPAPerPlay float64 `json:"off_pass_epa_per_play"`
	OffRushEPAPerPlay float64 `json:"off_rush_epa_per_play"`
	DefPassEPAPerPlay float64 `json:"def_pass_epa_per_play"`
	DefRushEPAPerPlay float64 `json:"def_rush_epa_per_play"`

	OffSuccessRate float64 `json:"off_success_rate"`
	DefSuccessRate float64 `json:"def_success_rate"`

	GiveawayRate float64 `json:"giveaway_rate"`
	TakeawayRate float64 `json:"takeaway_rate"`

	RedZoneTDRate        float64 `json:"red_zone_td_rate"`
	RedZoneTDRateAllowed float64 `json:"red_zone_td_rate_allowed"`

	FieldGoalPct      float64 `json:"field_goal_pct"`
	NetPuntAverage    float64 `json:"net_punt_average"`
	KickReturnAverage float64 `json:"kick_return_average"`

	SecondsPerPlay float64 `json:"seconds_per_play"`
	PassRate       float64 `json:"pass_rate"`
	Aggressiveness float64 `json:"aggressiveness"`

	// HomeFieldPoints is the scoring increment granted when this team
	// hosts; applied exactly once per trial by the orchestrator.
	HomeFieldPoints float64 `json:"home_field_points"`

	Units UnitGrades `json:"-"`

	// AppliedCorrections records the calibration deltas folded into this
	// profile, keyed by metric, for audit and exact reproduction.
	AppliedCorrections map[string]float64 `json:"applied_corrections,omitempty"`
}

// HasAdvancedGrades reports whether the profile was built in graded mode.
func (p *TeamProfile) HasAdvancedGrades() bool {
	return p.Units != nil && p.Units.Graded()
}

// MatchupContext holds the derived pairwise mismatch deltas between one
// team's offense and the opponent's defense, in grade points, each clamped
// to a bounded range. Recomputed per pairing and read-only afterward.
type MatchupContext struct {
	OffenseID string `json:"offense_id"`
	DefenseID string `json:"defense_id"`

	PassProtection float64 `json:"pass_protection"` // pass block vs pass rush
	Coverage       float64 `json:"coverage"`        // receiving vs coverage
	RunBlock       float64 `json:"run_block"`       // run block vs run defense
}
