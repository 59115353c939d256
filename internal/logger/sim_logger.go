// Package logger provides simulation-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for batch simulation runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogBatchComplete logs a completed Monte Carlo batch.
func (sl *SimulationLogger) LogBatchComplete(homeTeam, awayTeam string, season, week, trials, discarded int, predictedMargin float64, conviction string, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"home_team":        homeTeam,
		"away_team":        awayTeam,
		"season":           season,
		"week":             week,
		"trials":           trials,
		"discarded":        discarded,
		"predicted_margin": predictedMargin,
		"conviction":       conviction,
		"duration_ms":      durationMs,
	}).Info("Simulation batch completed")
}

// LogBatchUnreliable logs a batch whose discard rate crossed the threshold.
func (sl *SimulationLogger) LogBatchUnreliable(homeTeam, awayTeam string, discarded, target int) {
	sl.WithFields(logrus.Fields{
		"home_team": homeTeam,
		"away_team": awayTeam,
		"discarded": discarded,
		"target":    target,
	}).Warn("Simulation batch marked unreliable")
}

// LogProfileBuild logs a team profile construction.
func (sl *SimulationLogger) LogProfileBuild(teamID string, season, asOfWeek int, proxyGrades bool, corrections int) {
	sl.WithFields(logrus.Fields{
		"team_id":      teamID,
		"season":       season,
		"as_of_week":   asOfWeek,
		"proxy_grades": proxyGrades,
		"corrections":  corrections,
	}).Debug("Team profile built")
}
