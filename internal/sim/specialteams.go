package sim

import (
	"math"
	"math/rand"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Special teams are modeled as discrete probabilistic events
// parameterized by team special-teams ratings, not full play simulation.

// kickoffSpot returns the receiving offense's starting distance to goal
// after a kickoff.
func kickoffSpot(cfg Config, returning *models.TeamProfile, rng *rand.Rand) int {
	if rng.Float64() < cfg.KickoffTouchbackRate {
		return cfg.TouchbackYardLine
	}
	ret := rng.NormFloat64()*6 + returning.KickReturnAverage
	spot := 100 - int(math.Round(ret))
	if spot < 40 {
		spot = 40 // long return; scoring returns are folded into variance
	}
	if spot > 95 {
		spot = 95
	}
	return spot
}

// puntSpot returns the receiving offense's starting distance to goal when
// the kicking offense punts from yardLine.
func puntSpot(kicking *models.TeamProfile, yardLine int, rng *rand.Rand) int {
	net := rng.NormFloat64()*5 + kicking.NetPuntAverage
	spot := 100 - (yardLine - int(math.Round(net)))
	if spot > 80 {
		spot = 80 // touchback
	}
	if spot < 1 {
		spot = 1
	}
	return spot
}

// missedFieldGoalSpot is where the defense takes over after a miss: the
// kick spot, seven yards behind the line of scrimmage.
func missedFieldGoalSpot(yardLine int) int {
	spot := 100 - (yardLine + 7)
	if spot > 80 {
		spot = 80
	}
	if spot < 1 {
		spot = 1
	}
	return spot
}

// safetyFreeKickSpot is where the scoring team starts after the conceding
// team's free kick.
func safetyFreeKickSpot() int { return 60 }
