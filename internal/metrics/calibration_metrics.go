// Package metrics defines calibration-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Calibration counter vectors
var (
	CalibrationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "calibration_runs_total",
		Help:      "Total number of calibration runs by status",
	}, []string{"status"})

	CalibrationSkipsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "calibration_skips_total",
		Help:      "Total number of team metrics skipped during calibration by reason",
	}, []string{"reason"})
)

// Calibration histogram vectors
var (
	CalibrationBiasPoints = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "calibration_bias_points",
		Help:      "Absolute measured bias in points per game by metric",
		Buckets:   []float64{0.5, 1, 1.5, 2, 3, 4, 6, 8, 12},
	}, []string{"metric"})
)

// RecordCalibrationRun records a calibration run event.
// status should be one of: "success", "failure", "partial"
func RecordCalibrationRun(status string) {
	CalibrationRunsTotal.WithLabelValues(status).Inc()
}

// RecordCalibrationBias records the measured bias magnitude for a metric.
func RecordCalibrationBias(metric string, biasPoints float64) {
	if biasPoints < 0 {
		biasPoints = -biasPoints
	}
	CalibrationBiasPoints.WithLabelValues(metric).Observe(biasPoints)
}

// RecordCalibrationSkip records a skipped team metric during calibration.
// reason should be one of: "insufficient_history", "immaterial_bias"
func RecordCalibrationSkip(reason string) {
	CalibrationSkipsTotal.WithLabelValues(reason).Inc()
}
