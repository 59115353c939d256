package montecarlo

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourusername/gridiron-edge/internal/models"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type batchMeta struct {
	homeTeam  string
	awayTeam  string
	season    int
	week      int
	target    int
	discarded int
	truncated bool
	seed      int64
}

// buildBatch aggregates surviving trials into the published batch.
// Aggregation is commutative sums and counts, so trial completion order
// never affects the result.
func buildBatch(trials []models.SimulationTrial, meta batchMeta, line *models.MarketLine, cfg Config) *models.SimulationBatch {
	b := &models.SimulationBatch{
		ID:           uuid.New(),
		HomeTeam:     meta.homeTeam,
		AwayTeam:     meta.awayTeam,
		Season:       meta.season,
		Week:         meta.week,
		Trials:       len(trials),
		TargetTrials: meta.target,
		Discarded:    meta.discarded,
		Truncated:    meta.truncated,
		Seed:         meta.seed,
		CreatedAt:    time.Now().UTC(),
	}

	b.InsufficientSample = len(trials) < cfg.MinTrials
	if meta.target > 0 {
		b.Unreliable = float64(meta.discarded)/float64(meta.target) > cfg.MaxDiscardRate
	}
	if len(trials) == 0 {
		b.Conviction = models.ConvictionLow
		return b
	}

	home := make([]float64, len(trials))
	away := make([]float64, len(trials))
	margins := make([]float64, len(trials))
	totals := make([]float64, len(trials))
	var homeWins, awayWins, ties int
	for i, t := range trials {
		home[i] = float64(t.HomeScore)
		away[i] = float64(t.AwayScore)
		margins[i] = float64(t.Margin())
		totals[i] = float64(t.Total())
		switch {
		case t.Margin() > 0:
			homeWins++
		case t.Margin() < 0:
			awayWins++
		default:
			ties++
		}
	}

	b.HomeScoreMean, b.HomeScoreMedian, b.HomeScoreStdDev = describe(home)
	b.AwayScoreMean, b.AwayScoreMedian, b.AwayScoreStdDev = describe(away)
	_, marginMedian, marginStd := describe(margins)
	_, totalMedian, totalStd := describe(totals)
	b.PredictedMargin = marginMedian
	b.MarginStdDev = marginStd
	b.PredictedTotal = totalMedian
	b.TotalStdDev = totalStd

	n := float64(len(trials))
	b.HomeWinProb = float64(homeWins) / n
	b.AwayWinProb = float64(awayWins) / n
	b.TieProb = float64(ties) / n

	marginEdge := 0.0
	totalEdge := 0.0
	if line != nil {
		b.HomeCoverProb, b.AwayCoverProb, b.SpreadPushProb = coverSplit(trials, line.Spread)
		b.OverProb, b.UnderProb, b.TotalPushProb = totalSplit(trials, line.Total)
		marketMargin := -line.SpreadFloat()
		marginEdge = math.Abs(b.PredictedMargin - marketMargin)
		totalEdge = math.Abs(b.PredictedTotal - line.TotalFloat())
	}

	b.Conviction = convictionTier(marginEdge, totalEdge, marginStd, n, cfg)
	if !b.FullConfidence() {
		// Degraded batches never publish above LOW regardless of edge.
		b.Conviction = models.ConvictionLow
	}
	return b
}

// coverSplit buckets trials into home cover / away cover / push against
// the home spread. Decimal comparison keeps the push bucket exact: only
// an integer line can push an integer margin.
func coverSplit(trials []models.SimulationTrial, spread decimal.Decimal) (float64, float64, float64) {
	var homeCovers, awayCovers, pushes int
	for _, t := range trials {
		adj := decimal.NewFromInt(int64(t.Margin())).Add(spread)
		switch adj.Sign() {
		case 1:
			homeCovers++
		case -1:
			awayCovers++
		default:
			pushes++
		}
	}
	n := float64(len(trials))
	return float64(homeCovers) / n, float64(awayCovers) / n, float64(pushes) / n
}

func totalSplit(trials []models.SimulationTrial, total decimal.Decimal) (float64, float64, float64) {
	var overs, unders, pushes int
	for _, t := range trials {
		diff := decimal.NewFromInt(int64(t.Total())).Sub(total)
		switch diff.Sign() {
		case 1:
			overs++
		case -1:
			unders++
		default:
			pushes++
		}
	}
	n := float64(len(trials))
	return float64(overs) / n, float64(unders) / n, float64(pushes) / n
}

// convictionTier grades market disagreement against distribution
// concentration. The z-confidence term guards against calling HIGH on a
// wide, noisy distribution whose median merely drifted.
func convictionTier(marginEdge, totalEdge, marginStd, n float64, cfg Config) models.ConvictionTier {
	edge := math.Max(marginEdge, totalEdge)
	if edge < cfg.LowEdgePoints {
		return models.ConvictionLow
	}

	zConfidence := 1.0
	if marginStd > 0 && n > 1 {
		z := edge / (marginStd / math.Sqrt(n))
		zConfidence = distuv.Normal{Mu: 0, Sigma: 1}.CDF(z)
	}

	if edge >= cfg.HighEdgePoints && marginStd <= cfg.MaxConvictionStdDev && zConfidence > 0.95 {
		return models.ConvictionHigh
	}
	if zConfidence > 0.80 {
		return models.ConvictionMedium
	}
	return models.ConvictionLow
}

func describe(values []float64) (mean, median, stddev float64) {
	mean = stat.Mean(values, nil)
	stddev = math.Sqrt(stat.Variance(values, nil))
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return mean, median, stddev
}
