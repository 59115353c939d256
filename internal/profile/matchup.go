package profile

import (
	"math"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// ResolveMatchup derives the mismatch deltas of one team's offense against
// the opponent's defense. Each delta is offense grade minus defense grade
// in grade points, clamped to ±clamp. A missing grade on either side makes
// that mismatch zero rather than failing.
func ResolveMatchup(offense, defense *models.TeamProfile, clamp float64) models.MatchupContext {
	return models.MatchupContext{
		OffenseID:      offense.TeamID,
		DefenseID:      defense.TeamID,
		PassProtection: mismatch(offense, defense, models.UnitPassBlock, models.UnitPassRush, clamp),
		Coverage:       mismatch(offense, defense, models.UnitReceiving, models.UnitCoverage, clamp),
		RunBlock:       mismatch(offense, defense, models.UnitRunBlock, models.UnitRunDefense, clamp),
	}
}

func mismatch(offense, defense *models.TeamProfile, offUnit, defUnit models.Unit, clamp float64) float64 {
	if offense.Units == nil || defense.Units == nil {
		return 0
	}
	offGrade, ok := offense.Units.Grade(offUnit)
	if !ok {
		return 0
	}
	defGrade, ok := defense.Units.Grade(defUnit)
	if !ok {
		return 0
	}
	return clampValue(offGrade-defGrade, clamp)
}

func clampValue(v, bound float64) float64 {
	return math.Max(-bound, math.Min(bound, v))
}
