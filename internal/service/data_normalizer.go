package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// DataNormalizer canonicalizes feed payloads: team codes are upper-cased and
// mapped through the relocation alias table so a season's history joins
// cleanly regardless of which era's code the provider emits.
type DataNormalizer struct {
	teamAliasMap map[string]string
	logger       *logrus.Logger
}

// NewDataNormalizer creates a new data normalizer
func NewDataNormalizer(logger *logrus.Logger) *DataNormalizer {
	return &DataNormalizer{
		teamAliasMap: buildTeamAliasMap(),
		logger:       logger,
	}
}

// NormalizeTeamID returns the canonical code for a provider team code
func (n *DataNormalizer) NormalizeTeamID(teamID string) string {
	id := strings.ToUpper(strings.TrimSpace(teamID))
	if canonical, ok := n.teamAliasMap[id]; ok {
		return canonical
	}
	return id
}

// NormalizeTeamStats canonicalizes a snapshot in place
func (n *DataNormalizer) NormalizeTeamStats(stats *models.TeamWeekStats) {
	stats.TeamID = n.NormalizeTeamID(stats.TeamID)
}

// NormalizeLine canonicalizes a market line in place, minting a game ID when
// the provider did not send one
func (n *DataNormalizer) NormalizeLine(line *models.MarketLine) {
	line.HomeTeam = n.NormalizeTeamID(line.HomeTeam)
	line.AwayTeam = n.NormalizeTeamID(line.AwayTeam)
	if line.GameID == uuid.Nil {
		line.GameID = uuid.New()
	}
}

// NormalizeResult canonicalizes a final score in place
func (n *DataNormalizer) NormalizeResult(result *models.GameResult) {
	result.HomeTeam = n.NormalizeTeamID(result.HomeTeam)
	result.AwayTeam = n.NormalizeTeamID(result.AwayTeam)
	if result.GameID == uuid.Nil {
		result.GameID = uuid.New()
	}
}

// buildTeamAliasMap maps legacy and provider-specific codes to canonical ones
func buildTeamAliasMap() map[string]string {
	return map[string]string{
		"OAK": "LV",
		"SD":  "LAC",
		"STL": "LA",
		"LAR": "LA",
		"JAC": "JAX",
		"WSH": "WAS",
	}
}
