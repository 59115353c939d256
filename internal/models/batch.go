package models

import (
	"time"

	"github.com/google/uuid"
)

// ConvictionTier is the discrete confidence bucket for a published batch.
type ConvictionTier string

const (
	ConvictionHigh   ConvictionTier = "HIGH"
	ConvictionMedium ConvictionTier = "MEDIUM"
	ConvictionLow    ConvictionTier = "LOW"
)

// SimulationBatch is the aggregate over a set of trials for one matchup.
// Mutually exclusive outcome probabilities (win/tie, cover/push, over/push)
// each sum to 1 within floating tolerance.
type SimulationBatch struct {
	ID       uuid.UUID `db:"id" json:"id"`
	HomeTeam string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam string    `db:"away_team" json:"away_team" validate:"required"`
	Season   int       `db:"season" json:"season"`
	Week     int       `db:"week" json:"week"`

	Trials       int `db:"trials" json:"trials"`
	TargetTrials int `db:"target_trials" json:"target_trials"`
	Discarded    int `db:"discarded" json:"discarded"`

	HomeScoreMean   float64 `db:"home_score_mean" json:"home_score_mean"`
	HomeScoreMedian float64 `db:"home_score_median" json:"home_score_median"`
	HomeScoreStdDev float64 `db:"home_score_stddev" json:"home_score_stddev"`
	AwayScoreMean   float64 `db:"away_score_mean" json:"away_score_mean"`
	AwayScoreMedian float64 `db:"away_score_median" json:"away_score_median"`
	AwayScoreStdDev float64 `db:"away_score_stddev" json:"away_score_stddev"`

	PredictedMargin float64 `db:"predicted_margin" json:"predicted_margin"`
	MarginStdDev    float64 `db:"margin_stddev" json:"margin_stddev"`
	PredictedTotal  float64 `db:"predicted_total" json:"predicted_total"`
	TotalStdDev     float64 `db:"total_stddev" json:"total_stddev"`

	HomeWinProb float64 `db:"home_win_prob" json:"home_win_prob"`
	AwayWinProb float64 `db:"away_win_prob" json:"away_win_prob"`
	TieProb     float64 `db:"tie_prob" json:"tie_prob"`

	HomeCoverProb  float64 `db:"home_cover_prob" json:"home_cover_prob"`
	AwayCoverProb  float64 `db:"away_cover_prob" json:"away_cover_prob"`
	SpreadPushProb float64 `db:"spread_push_prob" json:"spread_push_prob"`

	OverProb      float64 `db:"over_prob" json:"over_prob"`
	UnderProb     float64 `db:"under_prob" json:"under_prob"`
	TotalPushProb float64 `db:"total_push_prob" json:"total_push_prob"`

	Conviction ConvictionTier `db:"conviction" json:"conviction"`

	Truncated          bool `db:"truncated" json:"truncated"`
	InsufficientSample bool `db:"insufficient_sample" json:"insufficient_sample"`
	Unreliable         bool `db:"unreliable" json:"unreliable"`

	Seed      int64     `db:"seed" json:"seed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FullConfidence reports whether the batch may feed staking decisions.
// Truncated, under-sampled, or divergence-flagged batches are published
// only as low-confidence.
func (b *SimulationBatch) FullConfidence() bool {
	return !b.Truncated && !b.InsufficientSample && !b.Unreliable
}
