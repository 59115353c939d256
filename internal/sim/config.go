// Package sim implements the play-by-play drive state machine and the
// game orchestrator that produces one simulated trial per invocation.
package sim

// Config holds the simulation tuning parameters. Every probability shift
// is explicit configuration rather than a package-level constant so
// seasons can be simulated concurrently with different tunings.
type Config struct {
	QuarterSeconds int
	// MaxDrivePlays is the per-drive safety valve: hitting it forces a
	// turnover-on-downs resolution instead of looping.
	MaxDrivePlays int
	// MaxGamePlays is the per-trial divergence bound; exceeding it marks
	// the whole trial divergent so the runner can discard it.
	MaxGamePlays int

	TwoMinuteSeconds int
	// RunawayScript is the score differential that shifts play calling
	// toward clock control (leader) or hurry-up (trailer).
	RunawayScript int

	BasePressureRate    float64
	PressureBeta        float64 // per grade point of pass-protection mismatch
	SackShareOfPressure float64
	SackYardsMean       float64
	SackYardsStd        float64

	BaseCompletionShort float64
	BaseCompletionDeep  float64
	CoverageBeta        float64 // completion shift per grade point of coverage mismatch
	PressureCompletionPenalty float64

	ShortPassYardsMean float64
	ShortPassYardsStd  float64
	DeepPassYardsMean  float64
	DeepPassYardsStd   float64
	RushYardsMean      float64
	RushYardsStd       float64
	RunBlockBeta       float64 // rush yards per grade point of run-block mismatch
	PassEPAYardsBeta   float64 // pass yards per point of offensive pass EPA
	RushEPAYardsBeta   float64

	InterceptionBase float64
	FumbleBase       float64
	LeagueTurnoverRate float64

	ExplosiveYards int

	RedZoneYardLine  int
	GoalLineYardLine int

	// Fourth-down decision model.
	AggressivenessShift float64 // EV tie-break per unit of aggressiveness prior
	FieldGoalRangeYards int

	KickoffTouchbackRate float64
	TouchbackYardLine    int // offense distance to goal after a touchback

	OvertimeStartYardLine int
}

// DefaultConfig returns league-baseline simulation tuning.
func DefaultConfig() Config {
	return Config{
		QuarterSeconds:   900,
		MaxDrivePlays:    24,
		MaxGamePlays:     220,
		TwoMinuteSeconds: 120,
		RunawayScript:    14,

		BasePressureRate:    0.24,
		PressureBeta:        -0.004,
		SackShareOfPressure: 0.27,
		SackYardsMean:       -6.8,
		SackYardsStd:        1.8,

		BaseCompletionShort:       0.66,
		BaseCompletionDeep:        0.38,
		CoverageBeta:              0.003,
		PressureCompletionPenalty: 0.18,

		ShortPassYardsMean: 9.6,
		ShortPassYardsStd:  6.5,
		DeepPassYardsMean:  24.0,
		DeepPassYardsStd:   11.0,
		RushYardsMean:      4.3,
		RushYardsStd:       3.4,
		RunBlockBeta:       0.035,
		PassEPAYardsBeta:   7.0,
		RushEPAYardsBeta:   4.0,

		InterceptionBase:   0.024,
		FumbleBase:         0.011,
		LeagueTurnoverRate: 0.12,

		ExplosiveYards: 20,

		RedZoneYardLine:  20,
		GoalLineYardLine: 3,

		AggressivenessShift: 1.2,
		FieldGoalRangeYards: 55,

		KickoffTouchbackRate: 0.62,
		TouchbackYardLine:    70,

		OvertimeStartYardLine: 75,
	}
}
