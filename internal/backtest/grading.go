package backtest

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// pickSpread selects a spread side from a batch. Spread is the home handicap,
// so the model likes the home side when its margin beats the negated spread.
// Low-conviction batches never produce a pick.
func pickSpread(batch *models.SimulationBatch, line *models.MarketLine, minEdge float64) string {
	if batch.Conviction == models.ConvictionLow {
		return models.PickNone
	}
	edge := batch.PredictedMargin + line.SpreadFloat()
	switch {
	case edge >= minEdge:
		return models.PickHome
	case edge <= -minEdge:
		return models.PickAway
	default:
		return models.PickNone
	}
}

// pickTotal selects over or under from a batch.
func pickTotal(batch *models.SimulationBatch, line *models.MarketLine, minEdge float64) string {
	if batch.Conviction == models.ConvictionLow {
		return models.PickNone
	}
	edge := batch.PredictedTotal - line.TotalFloat()
	switch {
	case edge >= minEdge:
		return models.PickOver
	case edge <= -minEdge:
		return models.PickUnder
	default:
		return models.PickNone
	}
}

// gradeSpread settles a spread pick against the final margin. The covered
// margin is computed in decimals so an integer margin pushes an integer line
// exactly and never a half-point one.
func gradeSpread(pick string, actualMargin int, spread decimal.Decimal) models.BetGrade {
	if pick == models.PickNone {
		return models.BetGradeNoBet
	}
	covered := decimal.NewFromInt(int64(actualMargin)).Add(spread)
	switch covered.Sign() {
	case 0:
		return models.BetGradePush
	case 1:
		if pick == models.PickHome {
			return models.BetGradeWin
		}
		return models.BetGradeLoss
	default:
		if pick == models.PickAway {
			return models.BetGradeWin
		}
		return models.BetGradeLoss
	}
}

// gradeTotal settles a total pick against the final combined score.
func gradeTotal(pick string, actualTotal int, total decimal.Decimal) models.BetGrade {
	if pick == models.PickNone {
		return models.BetGradeNoBet
	}
	diff := decimal.NewFromInt(int64(actualTotal)).Sub(total)
	switch diff.Sign() {
	case 0:
		return models.BetGradePush
	case 1:
		if pick == models.PickOver {
			return models.BetGradeWin
		}
		return models.BetGradeLoss
	default:
		if pick == models.PickUnder {
			return models.BetGradeWin
		}
		return models.BetGradeLoss
	}
}

// spreadCLV reports whether the placement spread beat the closing spread for
// the picked side. A home bettor wants more points, an away bettor fewer.
func spreadCLV(pick string, placed, closing decimal.Decimal) bool {
	switch pick {
	case models.PickHome:
		return placed.GreaterThan(closing)
	case models.PickAway:
		return placed.LessThan(closing)
	default:
		return false
	}
}

// totalCLV reports whether the placement total beat the close for the picked
// side. Over bettors want a lower number, under bettors a higher one.
func totalCLV(pick string, placed, closing decimal.Decimal) bool {
	switch pick {
	case models.PickOver:
		return placed.LessThan(closing)
	case models.PickUnder:
		return placed.GreaterThan(closing)
	default:
		return false
	}
}
