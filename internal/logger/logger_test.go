package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("error")
	assert.Equal(t, logrus.ErrorLevel, log.GetLevel())

	// Invalid levels should fall back to info rather than fail
	log = NewLogger("nonsense")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestSimulationLoggerBatchComplete(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogBatchComplete("KC", "LV", 2023, 6, 5000, 12, 6.4, "HIGH", 1840.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "KC", logEntry["home_team"])
	assert.Equal(t, "simulation", logEntry["component"])
	assert.Equal(t, "HIGH", logEntry["conviction"])
	assert.Equal(t, float64(5000), logEntry["trials"])
}

func TestSimulationLoggerUnreliable(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogBatchUnreliable("KC", "LV", 140, 5000)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, float64(140), logEntry["discarded"])
}

func TestSimulationLoggerProfileBuild(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogProfileBuild("DEN", 2023, 6, true, 2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "DEN", logEntry["team_id"])
	assert.Equal(t, true, logEntry["proxy_grades"])
}

func TestCalibrationLoggerRunComplete(t *testing.T) {
	log, buf := setupTestLogger()
	calLogger := NewCalibrationLogger(log)

	calLogger.LogRunComplete(2023, 6, 3, 18, 2, 5, 920.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "calibration", logEntry["component"])
	assert.Equal(t, float64(3), logEntry["version"])
	assert.Equal(t, float64(18), logEntry["records"])
}

func TestCalibrationLoggerCorrection(t *testing.T) {
	log, buf := setupTestLogger()
	calLogger := NewCalibrationLogger(log)

	calLogger.LogCorrection("KC", "points_scored", 3.1, -1.55, 5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "KC", logEntry["team_id"])
	assert.Equal(t, "points_scored", logEntry["metric"])
	assert.Equal(t, -1.55, logEntry["correction"])
}

func TestCalibrationLoggerSkip(t *testing.T) {
	log, buf := setupTestLogger()
	calLogger := NewCalibrationLogger(log)

	calLogger.LogSkip("CHI", "insufficient_history", 2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "insufficient_history", logEntry["reason"])
	assert.Equal(t, float64(2), logEntry["weeks"])
}
