package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordSimulationBatch(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name       string
		trials     int
		discarded  int
		conviction string
	}{
		{
			name:       "clean batch",
			trials:     5000,
			discarded:  0,
			conviction: "HIGH",
		},
		{
			name:       "batch with discards",
			trials:     4900,
			discarded:  100,
			conviction: "LOW",
		},
		{
			name:       "empty batch",
			trials:     0,
			discarded:  0,
			conviction: "LOW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSimulationBatch(tt.trials, tt.discarded, tt.conviction)
			})
		})
	}
}

func TestRecordBatchDuration(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordBatchDuration(2.3)
	})
}

func TestRecordProfileBuild(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordProfileBuild("graded")
		RecordProfileBuild("proxy")
	})
}

func TestRecordStatsFeedRequest(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordStatsFeedRequest("success")
		RecordStatsFeedRequest("error")
	})
}

func TestRecordCircuitBreakerTrip(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCircuitBreakerTrip()
	})
}

func TestUpdateActiveCorrection(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		points float64
	}{
		{
			name:   "positive correction",
			points: 1.8,
		},
		{
			name:   "negative correction",
			points: -2.4,
		},
		{
			name:   "zero correction",
			points: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateActiveCorrection("KC", "points_scored", tt.points)
			})
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func TestCalibrationMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCalibrationRun("success")
	})

	assert.NotPanics(t, func() {
		RecordCalibrationBias("points_scored", -3.1)
	})

	assert.NotPanics(t, func() {
		RecordCalibrationSkip("insufficient_history")
	})
}

func TestBacktestMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordBacktestRun("success")
	})

	assert.NotPanics(t, func() {
		UpdateBacktestMarginMAE("2023", 10.4)
	})

	assert.NotPanics(t, func() {
		UpdateBacktestATSRate("2023", "HIGH", 0.55)
	})
}

func BenchmarkRecordSimulationBatch(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordSimulationBatch(5000, 12, "MEDIUM")
	}
}

func BenchmarkUpdateActiveCorrection(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		UpdateActiveCorrection("KC", "points_scored", 1.2)
	}
}
