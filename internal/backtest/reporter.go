package backtest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// GenerateConsoleReport formats a report for terminal output.
func GenerateConsoleReport(report *Report) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Season: %d\n", report.Season))
	builder.WriteString(fmt.Sprintf("Games: %d (predicted %d, abstained %d)\n", report.Games, report.Predicted, report.NoPredictions))
	builder.WriteString(fmt.Sprintf("Margin MAE: %.2f\n", report.MarginMAE))
	builder.WriteString(fmt.Sprintf("Total MAE: %.2f\n", report.TotalMAE))
	builder.WriteString(fmt.Sprintf("Margin Bias: %+.2f\n", report.MarginBias))
	builder.WriteString(fmt.Sprintf("Spread Bets: %d (ATS %.1f%%)\n", report.SpreadBets, report.ATSRate*100))
	builder.WriteString(fmt.Sprintf("Total Bets: %d (hit %.1f%%)\n", report.TotalBets, report.TotalHitRate*100))
	builder.WriteString(fmt.Sprintf("CLV Beat Rate: %.1f%%\n", report.CLVBeatRate*100))

	tiers := make([]models.ConvictionTier, 0, len(report.ByTier))
	for tier := range report.ByTier {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })
	for _, tier := range tiers {
		tm := report.ByTier[tier]
		builder.WriteString(fmt.Sprintf("  %s: %d bets, %d-%d-%d, ATS %.1f%%\n",
			tier, tm.Bets, tm.Wins, tm.Losses, tm.Pushes, tm.ATSRate*100))
	}
	return builder.String()
}

// GenerateCSVExport exports key metrics for spreadsheets.
func GenerateCSVExport(report *Report, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	csv := "metric,value\n" +
		fmt.Sprintf("season,%d\n", report.Season) +
		fmt.Sprintf("games,%d\n", report.Games) +
		fmt.Sprintf("predicted,%d\n", report.Predicted) +
		fmt.Sprintf("no_predictions,%d\n", report.NoPredictions) +
		fmt.Sprintf("margin_mae,%.4f\n", report.MarginMAE) +
		fmt.Sprintf("total_mae,%.4f\n", report.TotalMAE) +
		fmt.Sprintf("margin_bias,%.4f\n", report.MarginBias) +
		fmt.Sprintf("spread_bets,%d\n", report.SpreadBets) +
		fmt.Sprintf("total_bets,%d\n", report.TotalBets) +
		fmt.Sprintf("ats_rate,%.4f\n", report.ATSRate) +
		fmt.Sprintf("total_hit_rate,%.4f\n", report.TotalHitRate) +
		fmt.Sprintf("clv_beat_rate,%.4f\n", report.CLVBeatRate)
	return os.WriteFile(outputPath, []byte(csv), 0o644)
}
