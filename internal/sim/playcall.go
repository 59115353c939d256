package sim

import (
	"math"
	"math/rand"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// PlayType is the sampled call for one snap.
type PlayType string

const (
	PlayRun       PlayType = "run"
	PlayShortPass PlayType = "short_pass"
	PlayDeepPass  PlayType = "deep_pass"
)

// IsPass reports whether the play is a dropback.
func (p PlayType) IsPass() bool { return p != PlayRun }

// callPlay samples a play type from the situational distribution
// conditioned on down, distance, field position, clock, and score
// differential.
func callPlay(state *GameState, offense *models.TeamProfile, cfg Config, rng *rand.Rand) PlayType {
	passProb := offense.PassRate

	diff := state.OffenseScoreDiff()
	switch {
	case diff <= -cfg.RunawayScript:
		passProb += 0.18 // chasing points
	case diff >= cfg.RunawayScript:
		passProb -= 0.20 // protecting the lead, burning clock
	}

	if state.TwoMinute(cfg) && diff <= 0 {
		passProb += 0.22
	}

	switch {
	case state.Distance >= 8:
		passProb += 0.15
	case state.Distance <= 2:
		passProb -= 0.22
	}

	if state.YardLine <= cfg.GoalLineYardLine {
		passProb -= 0.15
	}

	passProb = clampProb(passProb, 0.15, 0.92)
	if rng.Float64() >= passProb {
		return PlayRun
	}

	deepShare := 0.22
	if diff <= -cfg.RunawayScript || (state.TwoMinute(cfg) && diff < 0) {
		deepShare += 0.12
	}
	if state.YardLine <= cfg.RedZoneYardLine {
		deepShare = 0.08 // compressed field
	}
	if rng.Float64() < deepShare {
		return PlayDeepPass
	}
	return PlayShortPass
}

// playSeconds models tempo: hurry-up with the clock against you, slow
// grind with a big lead, and clock stoppage on incompletions.
func playSeconds(state *GameState, offense *models.TeamProfile, cfg Config, incomplete bool) int {
	if incomplete {
		return 7 // snap-to-whistle only, clock stops
	}
	secs := offense.SecondsPerPlay
	diff := state.OffenseScoreDiff()
	if state.TwoMinute(cfg) && diff <= 0 {
		secs *= 0.55
	} else if diff >= cfg.RunawayScript {
		secs *= 1.18
	}
	return int(math.Round(secs))
}

func clampProb(p, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, p))
}
