package backtest

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGradeSpread(t *testing.T) {
	tests := []struct {
		name   string
		pick   string
		margin int
		spread string
		want   models.BetGrade
	}{
		{
			name:   "home covers",
			pick:   models.PickHome,
			margin: 7,
			spread: "-3",
			want:   models.BetGradeWin,
		},
		{
			name:   "away covers",
			pick:   models.PickAway,
			margin: 1,
			spread: "-3",
			want:   models.BetGradeWin,
		},
		{
			name:   "exact push on integer line",
			pick:   models.PickHome,
			margin: 3,
			spread: "-3",
			want:   models.BetGradePush,
		},
		{
			name:   "half point line cannot push",
			pick:   models.PickHome,
			margin: 3,
			spread: "-2.5",
			want:   models.BetGradeWin,
		},
		{
			name:   "home laid too many",
			pick:   models.PickHome,
			margin: 2,
			spread: "-3",
			want:   models.BetGradeLoss,
		},
		{
			name:   "underdog home keeps it close",
			pick:   models.PickHome,
			margin: -4,
			spread: "6.5",
			want:   models.BetGradeWin,
		},
		{
			name:   "no pick grades no bet",
			pick:   models.PickNone,
			margin: 10,
			spread: "-3",
			want:   models.BetGradeNoBet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gradeSpread(tt.pick, tt.margin, dec(tt.spread))
			if got != tt.want {
				t.Errorf("gradeSpread() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGradeTotal(t *testing.T) {
	tests := []struct {
		name  string
		pick  string
		total int
		line  string
		want  models.BetGrade
	}{
		{
			name:  "over hits",
			pick:  models.PickOver,
			total: 51,
			line:  "44.5",
			want:  models.BetGradeWin,
		},
		{
			name:  "under hits",
			pick:  models.PickUnder,
			total: 37,
			line:  "44.5",
			want:  models.BetGradeWin,
		},
		{
			name:  "exact push",
			pick:  models.PickOver,
			total: 44,
			line:  "44",
			want:  models.BetGradePush,
		},
		{
			name:  "over misses",
			pick:  models.PickOver,
			total: 41,
			line:  "44.5",
			want:  models.BetGradeLoss,
		},
		{
			name:  "no pick grades no bet",
			pick:  models.PickNone,
			total: 60,
			line:  "44.5",
			want:  models.BetGradeNoBet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gradeTotal(tt.pick, tt.total, dec(tt.line))
			if got != tt.want {
				t.Errorf("gradeTotal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPickSpreadRespectsEdgeAndConviction(t *testing.T) {
	line := &models.MarketLine{Spread: dec("-3"), Total: dec("44.5")}

	batch := &models.SimulationBatch{PredictedMargin: 7, Conviction: models.ConvictionMedium}
	if got := pickSpread(batch, line, 2.0); got != models.PickHome {
		t.Errorf("pick = %s, want HOME with a four point edge", got)
	}

	batch = &models.SimulationBatch{PredictedMargin: -1, Conviction: models.ConvictionMedium}
	if got := pickSpread(batch, line, 2.0); got != models.PickAway {
		t.Errorf("pick = %s, want AWAY when model likes the dog", got)
	}

	batch = &models.SimulationBatch{PredictedMargin: 4, Conviction: models.ConvictionMedium}
	if got := pickSpread(batch, line, 2.0); got != models.PickNone {
		t.Errorf("pick = %s, want NONE inside the edge threshold", got)
	}

	batch = &models.SimulationBatch{PredictedMargin: 14, Conviction: models.ConvictionLow}
	if got := pickSpread(batch, line, 2.0); got != models.PickNone {
		t.Errorf("pick = %s, want NONE for low conviction regardless of edge", got)
	}
}

func TestPickTotalRespectsEdgeAndConviction(t *testing.T) {
	line := &models.MarketLine{Spread: dec("-3"), Total: dec("44.5")}

	batch := &models.SimulationBatch{PredictedTotal: 49, Conviction: models.ConvictionHigh}
	if got := pickTotal(batch, line, 2.0); got != models.PickOver {
		t.Errorf("pick = %s, want OVER", got)
	}

	batch = &models.SimulationBatch{PredictedTotal: 40, Conviction: models.ConvictionHigh}
	if got := pickTotal(batch, line, 2.0); got != models.PickUnder {
		t.Errorf("pick = %s, want UNDER", got)
	}

	batch = &models.SimulationBatch{PredictedTotal: 45, Conviction: models.ConvictionLow}
	if got := pickTotal(batch, line, 2.0); got != models.PickNone {
		t.Errorf("pick = %s, want NONE for low conviction", got)
	}
}

func TestCLVDirections(t *testing.T) {
	// A home bettor wants the handicap to grow, an away bettor the reverse.
	if !spreadCLV(models.PickHome, dec("-2.5"), dec("-3.5")) {
		t.Error("home bet at -2.5 closing -3.5 should beat the close")
	}
	if spreadCLV(models.PickHome, dec("-3.5"), dec("-2.5")) {
		t.Error("home bet at -3.5 closing -2.5 should not beat the close")
	}
	if !spreadCLV(models.PickAway, dec("-3.5"), dec("-2.5")) {
		t.Error("away bet at -3.5 closing -2.5 should beat the close")
	}
	if spreadCLV(models.PickNone, dec("-3"), dec("-4")) {
		t.Error("no pick never beats the close")
	}

	if !totalCLV(models.PickOver, dec("43.5"), dec("45")) {
		t.Error("over bet at 43.5 closing 45 should beat the close")
	}
	if !totalCLV(models.PickUnder, dec("45"), dec("43.5")) {
		t.Error("under bet at 45 closing 43.5 should beat the close")
	}
	if totalCLV(models.PickOver, dec("45"), dec("43.5")) {
		t.Error("over bet at 45 closing 43.5 should not beat the close")
	}
}
