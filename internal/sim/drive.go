package sim

import (
	"math"
	"math/rand"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// DriveSimulator runs one possession play-by-play for a fixed
// offense/defense pairing. It reads only immutable profile and matchup
// data plus its own RNG stream, so trials can run in parallel without
// locking.
type DriveSimulator struct {
	cfg     Config
	offense *models.TeamProfile
	defense *models.TeamProfile
	matchup models.MatchupContext
	rng     *rand.Rand
}

// NewDriveSimulator creates a drive simulator for one direction of play.
func NewDriveSimulator(cfg Config, offense, defense *models.TeamProfile, matchup models.MatchupContext, rng *rand.Rand) *DriveSimulator {
	return &DriveSimulator{cfg: cfg, offense: offense, defense: defense, matchup: matchup, rng: rng}
}

// Run simulates one drive starting from the state's current field
// position and mutates the shared state (clock, score via safeties are
// left to the orchestrator, down/distance). The drive is bounded by
// MaxDrivePlays; hitting the cap forces a turnover-on-downs so a trial
// can never loop indefinitely.
func (d *DriveSimulator) Run(state *GameState) models.DriveResult {
	result := models.DriveResult{StartYardLine: state.YardLine}

	for {
		if result.Plays() >= d.cfg.MaxDrivePlays {
			result.Outcome = models.DriveTurnoverOnDowns
			return result
		}
		if state.HalfEnded() {
			result.Outcome = models.DriveEndOfHalf
			return result
		}

		if state.Down == 4 {
			if done := d.fourthDown(state, &result); done {
				return result
			}
			// Going for it: the snap falls through to a normal play.
		}

		ev := d.runPlay(state)
		result.Events = append(result.Events, ev)
		result.EPATotal += ev.EPA
		state.Plays++
		state.advanceClock(d.cfg, playSeconds(state, d.offense, d.cfg, ev.Type != string(PlayRun) && !ev.Completed && !ev.Sack && !ev.Turnover))

		if ev.Turnover {
			result.Outcome = models.DriveTurnover
			return result
		}

		newYard := state.YardLine - ev.Yards
		if newYard <= 0 {
			result.Outcome = models.DriveTouchdown
			return result
		}
		if newYard >= 100 {
			result.Outcome = models.DriveSafety
			return result
		}

		if ev.Yards >= state.Distance {
			state.StartDrive(state.Possession, newYard) // fresh set of downs
			continue
		}

		state.YardLine = newYard
		state.Distance -= ev.Yards
		state.Down++
		if state.Down > 4 {
			result.Outcome = models.DriveTurnoverOnDowns
			return result
		}
	}
}

// fourthDown resolves the kick options. It returns true when the drive
// terminated (punt or field goal try); false means the offense goes for
// it and the caller runs a normal snap.
func (d *DriveSimulator) fourthDown(state *GameState, result *models.DriveResult) bool {
	switch d.decideFourthDown(state) {
	case decisionPunt:
		result.Outcome = models.DrivePunt
		state.advanceClock(d.cfg, 5)
		return true
	case decisionFieldGoal:
		if d.fieldGoalGood(state.YardLine) {
			result.Outcome = models.DriveFieldGoal
		} else {
			result.Outcome = models.DriveMissedFieldGoal
		}
		state.advanceClock(d.cfg, 5)
		return true
	}
	return false
}

// runPlay samples one snap. Outcome distributions are parameterized by
// the offense's efficiency and shifted by the matchup deltas, e.g.
// pressure probability = base + beta * pass-protection mismatch, clamped.
func (d *DriveSimulator) runPlay(state *GameState) models.PlayEvent {
	play := callPlay(state, d.offense, d.cfg, d.rng)

	if state.YardLine <= d.cfg.RedZoneYardLine {
		return d.runCompressedFieldPlay(state, play)
	}
	if play.IsPass() {
		return d.runPassPlay(state, play)
	}
	return d.runRushPlay(state)
}

func (d *DriveSimulator) runPassPlay(state *GameState, play PlayType) models.PlayEvent {
	ev := models.PlayEvent{Type: string(play)}

	// Strong protection (positive mismatch) suppresses pressure; the beta
	// is negative so the spec's base + beta*mismatch form holds.
	pressureProb := clampProb(d.cfg.BasePressureRate+d.cfg.PressureBeta*d.matchup.PassProtection, 0.02, 0.60)
	ev.Pressure = d.rng.Float64() < pressureProb

	if ev.Pressure && d.rng.Float64() < d.cfg.SackShareOfPressure {
		ev.Sack = true
		ev.Yards = int(math.Round(d.rng.NormFloat64()*d.cfg.SackYardsStd + d.cfg.SackYardsMean))
		if ev.Yards > -1 {
			ev.Yards = -1
		}
		if d.rng.Float64() < d.turnoverProb(d.cfg.FumbleBase*2) {
			ev.Turnover = true
		}
		ev.EPA = playEPA(ev)
		return ev
	}

	intProb := d.turnoverProb(d.cfg.InterceptionBase)
	if ev.Pressure {
		intProb *= 1.5
	}
	if play == PlayDeepPass {
		intProb *= 1.6
	}
	if d.rng.Float64() < intProb {
		ev.Turnover = true
		ev.EPA = playEPA(ev)
		return ev
	}

	comp := d.cfg.BaseCompletionShort
	mu := d.cfg.ShortPassYardsMean
	sigma := d.cfg.ShortPassYardsStd
	if play == PlayDeepPass {
		comp = d.cfg.BaseCompletionDeep
		mu = d.cfg.DeepPassYardsMean
		sigma = d.cfg.DeepPassYardsStd
	}
	comp += d.cfg.CoverageBeta * d.matchup.Coverage
	if ev.Pressure {
		comp -= d.cfg.PressureCompletionPenalty
	}
	if d.rng.Float64() >= clampProb(comp, 0.10, 0.85) {
		ev.Yards = 0 // incompletion
		ev.EPA = playEPA(ev)
		return ev
	}
	ev.Completed = true

	mu += d.cfg.PassEPAYardsBeta * d.offense.OffPassEPAPerPlay
	mu += 0.08 * d.matchup.Coverage
	ev.Yards = int(math.Round(d.rng.NormFloat64()*sigma + mu))
	if ev.Yards < -3 {
		ev.Yards = -3
	}
	if ev.Yards > state.YardLine {
		ev.Yards = state.YardLine
	}
	ev.Explosive = ev.Yards >= d.cfg.ExplosiveYards
	ev.EPA = playEPA(ev)
	return ev
}

func (d *DriveSimulator) runRushPlay(state *GameState) models.PlayEvent {
	ev := models.PlayEvent{Type: string(PlayRun)}

	if d.rng.Float64() < d.turnoverProb(d.cfg.FumbleBase) {
		ev.Turnover = true
		ev.EPA = playEPA(ev)
		return ev
	}

	mu := d.cfg.RushYardsMean +
		d.cfg.RunBlockBeta*d.matchup.RunBlock +
		d.cfg.RushEPAYardsBeta*d.offense.OffRushEPAPerPlay
	ev.Yards = int(math.Round(d.rng.NormFloat64()*d.cfg.RushYardsStd + mu))
	if ev.Yards < -5 {
		ev.Yards = -5
	}
	if ev.Yards > state.YardLine {
		ev.Yards = state.YardLine
	}
	ev.Explosive = ev.Yards >= d.cfg.ExplosiveYards
	ev.EPA = playEPA(ev)
	return ev
}

// runCompressedFieldPlay replaces generic yardage sampling inside the red
// zone: the compressed field changes dynamics, so each snap converts to a
// touchdown with a field-position-specific probability or grinds out
// short yardage.
func (d *DriveSimulator) runCompressedFieldPlay(state *GameState, play PlayType) models.PlayEvent {
	ev := models.PlayEvent{Type: string(play)}

	if play.IsPass() {
		pressureProb := clampProb(d.cfg.BasePressureRate+d.cfg.PressureBeta*d.matchup.PassProtection, 0.02, 0.60)
		ev.Pressure = d.rng.Float64() < pressureProb
		if ev.Pressure && d.rng.Float64() < d.cfg.SackShareOfPressure {
			ev.Sack = true
			ev.Yards = -int(math.Abs(math.Round(d.rng.NormFloat64()*d.cfg.SackYardsStd + d.cfg.SackYardsMean)))
			ev.EPA = playEPA(ev)
			return ev
		}
	}

	if d.rng.Float64() < d.turnoverProb(d.cfg.InterceptionBase*0.8) {
		ev.Turnover = true
		ev.EPA = playEPA(ev)
		return ev
	}

	if d.rng.Float64() < d.touchdownConversionProb(state.YardLine) {
		ev.Yards = state.YardLine
		ev.Completed = play.IsPass()
		ev.EPA = playEPA(ev)
		return ev
	}

	// Stopped short: modest gains only on the compressed field.
	ev.Yards = int(math.Round(d.rng.NormFloat64()*2.2 + 2.4))
	if ev.Yards < -3 {
		ev.Yards = -3
	}
	if ev.Yards >= state.YardLine {
		ev.Yards = state.YardLine - 1
	}
	ev.Completed = play.IsPass() && ev.Yards != 0
	ev.EPA = playEPA(ev)
	return ev
}

// touchdownConversionProb is the per-snap chance the offense punches it
// in, blending the offense's red-zone rate with the defense's allowed
// rate and scaling up as the field shrinks.
func (d *DriveSimulator) touchdownConversionProb(yardLine int) float64 {
	base := (d.offense.RedZoneTDRate + d.defense.RedZoneTDRateAllowed) / 2
	perPlay := base / 3.5 // red-zone drives average a handful of snaps
	if yardLine <= d.cfg.GoalLineYardLine {
		perPlay = base / 1.6
	}
	return clampProb(perPlay+0.004*float64(d.cfg.RedZoneYardLine-yardLine), 0.02, 0.75)
}

// turnoverProb modulates a base rate by how giveaway-prone the offense is
// and how opportunistic the defense is.
func (d *DriveSimulator) turnoverProb(base float64) float64 {
	offFactor := 1 + (d.offense.GiveawayRate-d.cfg.LeagueTurnoverRate)*3
	defFactor := 1 + (d.defense.TakeawayRate-d.cfg.LeagueTurnoverRate)*3
	return clampProb(base*offFactor*defFactor, 0.001, 0.15)
}

// playEPA is the simulator's internal expected-points bookkeeping for
// drive and trial aggregates.
func playEPA(ev models.PlayEvent) float64 {
	if ev.Turnover {
		return -3.2
	}
	return float64(ev.Yards)*0.065 - 0.12
}
