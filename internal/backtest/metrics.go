package backtest

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// TierMetrics are bet results bucketed by conviction tier. Pushes settle flat
// and are excluded from hit rates.
type TierMetrics struct {
	Bets    int     `json:"bets"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Pushes  int     `json:"pushes"`
	ATSRate float64 `json:"ats_rate"`
}

// Report summarizes one backtest run.
type Report struct {
	Season int `json:"season"`

	Games         int `json:"games"`
	Predicted     int `json:"predicted"`
	NoPredictions int `json:"no_predictions"`

	MarginMAE  float64 `json:"margin_mae"`
	TotalMAE   float64 `json:"total_mae"`
	MarginBias float64 `json:"margin_bias"`

	SpreadBets   int     `json:"spread_bets"`
	TotalBets    int     `json:"total_bets"`
	ATSRate      float64 `json:"ats_rate"`
	TotalHitRate float64 `json:"total_hit_rate"`
	CLVBeatRate  float64 `json:"clv_beat_rate"`

	ByTier map[models.ConvictionTier]TierMetrics `json:"by_tier"`

	Duration time.Duration `json:"duration"`
}

// BuildReport computes error and betting metrics over graded records.
func BuildReport(season int, records []*models.BacktestRecord) *Report {
	report := &Report{
		Season: season,
		Games:  len(records),
		ByTier: make(map[models.ConvictionTier]TierMetrics),
	}

	var marginAbs, totalAbs, marginErr []float64
	var spreadWins, spreadLosses, spreadPushes int
	var totalWins, totalLosses int
	var clvBets, clvBeats int

	for _, rec := range records {
		if rec.NoPrediction {
			report.NoPredictions++
			continue
		}
		report.Predicted++
		marginAbs = append(marginAbs, math.Abs(rec.MarginError))
		totalAbs = append(totalAbs, math.Abs(rec.TotalError))
		marginErr = append(marginErr, rec.MarginError)

		if rec.SpreadPick != models.PickNone {
			report.SpreadBets++
			clvBets++
			if rec.SpreadCLV {
				clvBeats++
			}
			tier := report.ByTier[rec.Conviction]
			tier.Bets++
			switch rec.SpreadGrade {
			case models.BetGradeWin:
				spreadWins++
				tier.Wins++
			case models.BetGradeLoss:
				spreadLosses++
				tier.Losses++
			case models.BetGradePush:
				spreadPushes++
				tier.Pushes++
			}
			report.ByTier[rec.Conviction] = tier
		}

		if rec.TotalPick != models.PickNone {
			report.TotalBets++
			clvBets++
			if rec.TotalCLV {
				clvBeats++
			}
			switch rec.TotalGrade {
			case models.BetGradeWin:
				totalWins++
			case models.BetGradeLoss:
				totalLosses++
			}
		}
	}

	if len(marginAbs) > 0 {
		report.MarginMAE = stat.Mean(marginAbs, nil)
		report.TotalMAE = stat.Mean(totalAbs, nil)
		report.MarginBias = stat.Mean(marginErr, nil)
	}
	report.ATSRate = hitRate(spreadWins, spreadLosses)
	report.TotalHitRate = hitRate(totalWins, totalLosses)
	if clvBets > 0 {
		report.CLVBeatRate = float64(clvBeats) / float64(clvBets)
	}

	for tier, tm := range report.ByTier {
		tm.ATSRate = hitRate(tm.Wins, tm.Losses)
		report.ByTier[tier] = tm
	}

	return report
}

func hitRate(wins, losses int) float64 {
	if wins+losses == 0 {
		return 0
	}
	return float64(wins) / float64(wins+losses)
}
