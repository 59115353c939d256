// Package logger provides calibration audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// CalibrationLogger provides a dedicated audit trail for correction changes,
// since corrections silently move every subsequent prediction.
type CalibrationLogger struct {
	*logrus.Entry
}

// NewCalibrationLogger creates a new calibration logger.
func NewCalibrationLogger(baseLogger *logrus.Logger) *CalibrationLogger {
	return &CalibrationLogger{
		Entry: baseLogger.WithField("component", "calibration"),
	}
}

// LogRunComplete logs a finished calibration pass.
func (cl *CalibrationLogger) LogRunComplete(season, week, version, records, skippedHistory, skippedImmaterial int, durationMs float64) {
	cl.WithFields(logrus.Fields{
		"season":             season,
		"week":               week,
		"version":            version,
		"records":            records,
		"skipped_history":    skippedHistory,
		"skipped_immaterial": skippedImmaterial,
		"duration_ms":        durationMs,
	}).Info("Calibration run completed")
}

// LogCorrection logs one issued correction.
func (cl *CalibrationLogger) LogCorrection(teamID, metric string, bias, correction float64, sampleWeeks int) {
	cl.WithFields(logrus.Fields{
		"team_id":      teamID,
		"metric":       metric,
		"bias":         bias,
		"correction":   correction,
		"sample_weeks": sampleWeeks,
	}).Info("Calibration correction issued")
}

// LogSkip logs a skipped team with the reason.
func (cl *CalibrationLogger) LogSkip(teamID, reason string, weeks int) {
	cl.WithFields(logrus.Fields{
		"team_id": teamID,
		"reason":  reason,
		"weeks":   weeks,
	}).Info("Calibration skipped for team")
}
