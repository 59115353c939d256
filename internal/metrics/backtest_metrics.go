// Package metrics defines backtesting-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by status",
	}, []string{"status"})
)

// Backtest gauge vectors
var (
	BacktestMarginMAE = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "backtest_margin_mae",
		Help:      "Mean absolute error of predicted margins from the latest backtest",
	}, []string{"season"})

	BacktestATSRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "backtest_ats_rate",
		Help:      "Against-the-spread hit rate from the latest backtest by conviction tier",
	}, []string{"season", "conviction"})
)

// RecordBacktestRun records a backtest run event.
// status should be one of: "success", "failure", "timeout"
func RecordBacktestRun(status string) {
	BacktestRunsTotal.WithLabelValues(status).Inc()
}

// UpdateBacktestMarginMAE updates the margin MAE gauge for a season.
func UpdateBacktestMarginMAE(season string, mae float64) {
	BacktestMarginMAE.WithLabelValues(season).Set(mae)
}

// UpdateBacktestATSRate updates the ATS hit rate gauge for a season and tier.
func UpdateBacktestATSRate(season, conviction string, rate float64) {
	BacktestATSRate.WithLabelValues(season, conviction).Set(rate)
}
