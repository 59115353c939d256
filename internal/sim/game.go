package sim

import (
	"math/rand"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Game alternates possessions between two drive simulators across four
// quarters plus a simplified overtime, producing one SimulationTrial.
// A Game owns a private RNG stream and mutates only its trial-local
// state, so independent games run concurrently without coordination.
type Game struct {
	cfg  Config
	home *models.TeamProfile
	away *models.TeamProfile
	rng  *rand.Rand

	homeDrive *DriveSimulator
	awayDrive *DriveSimulator
}

// NewGame wires a single-trial orchestrator. homeAttack pairs the home
// offense against the away defense; awayAttack the reverse.
func NewGame(cfg Config, home, away *models.TeamProfile, homeAttack, awayAttack models.MatchupContext, rng *rand.Rand) *Game {
	return &Game{
		cfg:       cfg,
		home:      home,
		away:      away,
		rng:       rng,
		homeDrive: NewDriveSimulator(cfg, home, away, homeAttack, rng),
		awayDrive: NewDriveSimulator(cfg, away, home, awayAttack, rng),
	}
}

// Simulate plays one complete game.
func (g *Game) Simulate() models.SimulationTrial {
	state := NewGameState(g.cfg)
	trial := models.SimulationTrial{}

	opening := HomePossession
	if g.rng.Intn(2) == 1 {
		opening = AwayPossession
	}

	g.playHalf(state, &trial, opening)
	if !trial.Diverged {
		state.StartSecondHalf(g.cfg)
		g.playHalf(state, &trial, opening.Other())
	}

	g.applyHomeField(state)

	if !trial.Diverged && state.HomeScore == state.AwayScore {
		g.playOvertime(state, &trial)
	}

	trial.HomeScore = state.HomeScore
	trial.AwayScore = state.AwayScore
	trial.TotalPlays = state.Plays
	if state.Plays > g.cfg.MaxGamePlays {
		trial.Diverged = true
	}
	return trial
}

func (g *Game) playHalf(state *GameState, trial *models.SimulationTrial, receiver Possession) {
	offense := receiver
	state.StartDrive(offense, kickoffSpot(g.cfg, g.profileOf(offense), g.rng))

	for !state.HalfEnded() {
		res := g.driveFor(offense).Run(state)
		g.record(trial, offense, res)

		// Possession alternates exactly once per terminal drive event.
		next := offense.Other()
		var spot int
		switch res.Outcome {
		case models.DriveTouchdown, models.DriveFieldGoal:
			state.AddPoints(offense, res.Outcome.Points())
			spot = kickoffSpot(g.cfg, g.profileOf(next), g.rng)
		case models.DriveMissedFieldGoal:
			spot = missedFieldGoalSpot(state.YardLine)
		case models.DrivePunt:
			spot = puntSpot(g.profileOf(offense), state.YardLine, g.rng)
		case models.DriveTurnover, models.DriveTurnoverOnDowns:
			spot = 100 - state.YardLine
		case models.DriveSafety:
			state.AddPoints(next, 2)
			spot = safetyFreeKickSpot()
		case models.DriveEndOfHalf:
			return
		}

		if state.Plays > g.cfg.MaxGamePlays {
			trial.Diverged = true
			return
		}
		if state.HalfEnded() {
			return // clock expired on the scoring or change-of-possession play
		}
		state.StartDrive(next, spot)
		offense = next
	}
}

// playOvertime implements the simplified rule: each side gets exactly one
// possession from its own 25; if the score is still level after the
// exchange the game ends tied.
func (g *Game) playOvertime(state *GameState, trial *models.SimulationTrial) {
	trial.Overtime = true
	state.StartOvertime()

	first := HomePossession
	if g.rng.Intn(2) == 1 {
		first = AwayPossession
	}

	for _, offense := range []Possession{first, first.Other()} {
		state.StartDrive(offense, g.cfg.OvertimeStartYardLine)
		res := g.driveFor(offense).Run(state)
		g.record(trial, offense, res)
		switch res.Outcome {
		case models.DriveTouchdown, models.DriveFieldGoal:
			state.AddPoints(offense, res.Outcome.Points())
		case models.DriveSafety:
			state.AddPoints(offense.Other(), 2)
		}
	}
}

// applyHomeField credits the hosting bonus exactly once per trial, after
// regulation and before the overtime check. Fractional configuration is
// resolved by stochastic rounding so the expected increment matches the
// configured value.
func (g *Game) applyHomeField(state *GameState) {
	hf := g.home.HomeFieldPoints
	if hf <= 0 {
		return
	}
	pts := int(hf)
	if g.rng.Float64() < hf-float64(pts) {
		pts++
	}
	state.AddPoints(HomePossession, pts)
}

func (g *Game) record(trial *models.SimulationTrial, offense Possession, res models.DriveResult) {
	passPlays := 0
	pressures := 0
	for _, ev := range res.Events {
		if ev.Type != string(PlayRun) {
			passPlays++
		}
		if ev.Pressure {
			pressures++
		}
	}
	if offense == HomePossession {
		trial.HomePassPlays += passPlays
		trial.HomePressuresAllowed += pressures
		trial.HomeEPA += res.EPATotal
	} else {
		trial.AwayPassPlays += passPlays
		trial.AwayPressuresAllowed += pressures
		trial.AwayEPA += res.EPATotal
	}
}

func (g *Game) profileOf(side Possession) *models.TeamProfile {
	if side == HomePossession {
		return g.home
	}
	return g.away
}

func (g *Game) driveFor(side Possession) *DriveSimulator {
	if side == HomePossession {
		return g.homeDrive
	}
	return g.awayDrive
}
