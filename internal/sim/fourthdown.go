package sim

import "math"

type fourthDownDecision int

const (
	decisionGoForIt fourthDownDecision = iota
	decisionFieldGoal
	decisionPunt
)

// decideFourthDown compares the expected points of going for it, kicking,
// and punting, picking the highest. The team's aggressiveness prior acts
// as a tie-break shift on the go-for-it value.
func (d *DriveSimulator) decideFourthDown(state *GameState) fourthDownDecision {
	goEV := d.goForItValue(state)
	fgEV := d.fieldGoalValue(state)
	puntEV := d.puntValue(state)

	// Desperation overrides the ledger: deep in the fourth quarter a team
	// down multiple scores has nothing to punt for.
	if state.Quarter >= 4 && state.OffenseScoreDiff() < -8 && state.Clock <= 300 {
		if fgEV > goEV && state.OffenseScoreDiff() >= -11 {
			return decisionFieldGoal
		}
		return decisionGoForIt
	}

	best := decisionGoForIt
	bestEV := goEV
	if fgEV > bestEV {
		best = decisionFieldGoal
		bestEV = fgEV
	}
	if puntEV > bestEV {
		best = decisionPunt
	}
	return best
}

func (d *DriveSimulator) goForItValue(state *GameState) float64 {
	conv := conversionProb(state.Distance)
	made := expectedPoints(state.YardLine)
	failed := -expectedPoints(100 - state.YardLine)
	ev := conv*made + (1-conv)*failed
	// Aggressive coaches lean in; timid ones lean away.
	return ev + (d.offense.Aggressiveness-0.5)*d.cfg.AggressivenessShift
}

func (d *DriveSimulator) fieldGoalValue(state *GameState) float64 {
	kickDistance := state.YardLine + 17
	if kickDistance > d.cfg.FieldGoalRangeYards+5 {
		return math.Inf(-1)
	}
	make := d.fieldGoalProb(state.YardLine)
	// A miss hands the opponent the ball at the kick spot.
	missSpot := 100 - (state.YardLine + 7)
	if missSpot > 80 {
		missSpot = 80
	}
	return make*3 + (1-make)*(-expectedPoints(missSpot))
}

func (d *DriveSimulator) puntValue(state *GameState) float64 {
	if state.YardLine <= 35 {
		// Punting from the edge of field-goal range is nearly always
		// dominated; model it as pinning at the 10 at best.
		return -expectedPoints(90)
	}
	net := d.offense.NetPuntAverage
	oppYard := 100 - (state.YardLine - int(net))
	if oppYard > 80 {
		oppYard = 80 // touchback
	}
	if oppYard < 1 {
		oppYard = 1
	}
	return -expectedPoints(oppYard)
}

// fieldGoalProb maps the team's kicker accuracy (anchored at a 40-yard
// try) across distance.
func (d *DriveSimulator) fieldGoalProb(yardLine int) float64 {
	kickDistance := float64(yardLine + 17)
	p := d.offense.FieldGoalPct + (40-kickDistance)*0.012
	return clampProb(p, 0.03, 0.99)
}

// fieldGoalGood samples the kick.
func (d *DriveSimulator) fieldGoalGood(yardLine int) bool {
	return d.rng.Float64() < d.fieldGoalProb(yardLine)
}

// conversionProb is the distance-specific chance of moving the sticks on
// one snap.
func conversionProb(distance int) float64 {
	table := []float64{0, 0.68, 0.60, 0.55, 0.48, 0.45, 0.40, 0.38, 0.35, 0.33, 0.30}
	if distance < len(table) {
		return table[distance]
	}
	return clampProb(0.30-0.012*float64(distance-10), 0.08, 0.30)
}

// expectedPoints is a linear expected-points surface over field position:
// ~5.9 at the opponent 1, slightly negative backed up at your own goal
// line.
func expectedPoints(yardLine int) float64 {
	return 6.0 - 0.075*float64(yardLine)
}
