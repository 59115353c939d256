package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/tracing"
)

func TestObservabilityIntegration(t *testing.T) {
	metrics.InitRegistry()

	appLog := logrus.New()
	logBuf := &bytes.Buffer{}
	appLog.SetOutput(logBuf)
	appLog.SetFormatter(&logrus.JSONFormatter{})
	appLog.SetLevel(logrus.DebugLevel)

	simLogger := logger.NewSimulationLogger(appLog)
	calLogger := logger.NewCalibrationLogger(appLog)

	err := tracing.Initialize(tracing.Config{
		ServiceName: "test-sim",
		Enabled:     false,
	}, appLog)
	require.NoError(t, err)

	t.Run("metrics collection", func(t *testing.T) {
		metrics.RecordSimulationBatch(5000, 12, "HIGH")
		metrics.RecordBatchDuration(1.8)
		metrics.RecordProfileBuild("proxy")
		metrics.RecordCalibrationRun("success")
		metrics.UpdateActiveCorrection("KC", "points_scored", -0.8)
	})

	t.Run("simulation logging", func(t *testing.T) {
		logBuf.Reset()

		simLogger.LogBatchComplete("KC", "BUF", 2025, 9, 4988, 12, -2.4, "MEDIUM", 1820)

		var logEntry map[string]interface{}
		err := json.Unmarshal(logBuf.Bytes(), &logEntry)
		require.NoError(t, err)
		assert.Equal(t, "KC", logEntry["home_team"])
		assert.Equal(t, "MEDIUM", logEntry["conviction"])
	})

	t.Run("calibration logging", func(t *testing.T) {
		logBuf.Reset()

		calLogger.LogRunComplete(2025, 9, 3, 14, 2, 5, 640)

		var logEntry map[string]interface{}
		err := json.Unmarshal(logBuf.Bytes(), &logEntry)
		require.NoError(t, err)
		assert.Equal(t, float64(3), logEntry["version"])
		assert.Equal(t, float64(14), logEntry["records"])
	})

	t.Run("prometheus metrics endpoint", func(t *testing.T) {
		registry := metrics.GetRegistry()
		require.NotNil(t, registry)

		handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		server := httptest.NewServer(handler)
		defer server.Close()

		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := &bytes.Buffer{}
		_, err = body.ReadFrom(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, body.String(), "gridiron_edge_")
	})

	t.Run("concurrent metrics recording", func(t *testing.T) {
		done := make(chan bool)

		for i := 0; i < 10; i++ {
			go func(idx int) {
				metrics.RecordSimulationBatch(5000, idx, "LOW")
				metrics.RecordBatchDuration(float64(idx) * 0.2)
				metrics.UpdateActiveCorrection(fmt.Sprintf("TEAM_%d", idx%4), "points_allowed", 0.5)
				done <- true
			}(i)
		}

		for i := 0; i < 10; i++ {
			<-done
		}
	})
}

func TestTraceSegmentIntegration(t *testing.T) {
	appLog := logrus.New()
	appLog.SetOutput(&bytes.Buffer{})

	err := tracing.Initialize(tracing.Config{
		ServiceName: "test-sim",
		Enabled:     false,
	}, appLog)
	require.NoError(t, err)

	ctx, seg := tracing.StartSegment(context.Background(), "simulate-week")
	assert.NotNil(t, ctx)
	assert.NotNil(t, seg)

	subCtx, sub := tracing.StartSubsegment(ctx, "build-profiles")
	assert.NotNil(t, subCtx)

	tracing.AddAnnotation(subCtx, "season", 2025)
	tracing.AddMetadata(subCtx, "teams", map[string]string{"home": "KC", "away": "BUF"})
	tracing.AddError(subCtx, fmt.Errorf("no stats for BUF week 9"))

	if sub != nil {
		sub.Close(nil)
	}
	seg.Close(nil)
}
