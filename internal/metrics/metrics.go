// Package metrics provides the centralized Prometheus metrics registry for the simulator.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SimulationBatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "simulation_batches_total",
		Help:      "Total number of Monte Carlo batches completed",
	}, []string{"conviction"})
	SimulationTrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "simulation_trials_total",
		Help:      "Total number of game trials simulated",
	})
	SimulationTrialsDiscardedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "simulation_trials_discarded_total",
		Help:      "Total number of trials discarded as diverged",
	})
	ProfileBuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "profile_builds_total",
		Help:      "Total number of team profile builds by grade mode",
	}, []string{"mode"})
	StatsFeedRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "stats_feed_requests_total",
		Help:      "Total number of stats feed requests by result",
	}, []string{"result"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of stats feed circuit breaker trips",
	})
)

// Gauge metrics
var (
	LastBatchDiscardRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "last_batch_discard_rate",
		Help:      "Discard rate of the most recent simulation batch",
	})
	ActiveCorrections = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "active_corrections",
		Help:      "Active calibration correction in points per game",
	}, []string{"team_id", "metric"})
	ScheduledCalibrationRuns = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "scheduled_calibration_runs",
		Help:      "Number of calibration jobs registered with the scheduler",
	})
)

// Histogram metrics
var (
	BatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "batch_duration_seconds",
		Help:      "Duration of Monte Carlo batch runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(SimulationBatchesTotal)
		registry.MustRegister(SimulationTrialsTotal)
		registry.MustRegister(SimulationTrialsDiscardedTotal)
		registry.MustRegister(ProfileBuildsTotal)
		registry.MustRegister(StatsFeedRequestsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)

		// Register gauge metrics
		registry.MustRegister(LastBatchDiscardRate)
		registry.MustRegister(ActiveCorrections)
		registry.MustRegister(ScheduledCalibrationRuns)

		// Register histogram metrics
		registry.MustRegister(BatchDuration)
		registry.MustRegister(BacktestDuration)

		// Register calibration metrics
		registry.MustRegister(CalibrationRunsTotal)
		registry.MustRegister(CalibrationBiasPoints)
		registry.MustRegister(CalibrationSkipsTotal)

		// Register backtest metrics
		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestMarginMAE)
		registry.MustRegister(BacktestATSRate)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSimulationBatch records a completed Monte Carlo batch.
func RecordSimulationBatch(trials, discarded int, conviction string) {
	SimulationBatchesTotal.WithLabelValues(conviction).Inc()
	SimulationTrialsTotal.Add(float64(trials))
	SimulationTrialsDiscardedTotal.Add(float64(discarded))
	if trials+discarded > 0 {
		LastBatchDiscardRate.Set(float64(discarded) / float64(trials+discarded))
	}
}

// RecordBatchDuration records the wall-clock duration of a batch run.
func RecordBatchDuration(durationSeconds float64) {
	BatchDuration.Observe(durationSeconds)
}

// RecordProfileBuild records a profile build by grade mode ("graded" or "proxy").
func RecordProfileBuild(mode string) {
	ProfileBuildsTotal.WithLabelValues(mode).Inc()
}

// RecordStatsFeedRequest records a stats feed request outcome.
func RecordStatsFeedRequest(result string) {
	StatsFeedRequestsTotal.WithLabelValues(result).Inc()
}

// RecordCircuitBreakerTrip records a stats feed circuit breaker trip.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// UpdateActiveCorrection updates the active correction gauge for a team metric.
func UpdateActiveCorrection(teamID, metric string, points float64) {
	ActiveCorrections.WithLabelValues(teamID, metric).Set(points)
}

// UpdateScheduledCalibrationRuns updates the scheduled job count gauge.
func UpdateScheduledCalibrationRuns(count float64) {
	ScheduledCalibrationRuns.Set(count)
}
