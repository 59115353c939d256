package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketLine holds the spread and total for one game. Line values are
// decimals so push detection is exact: an integer margin can only push an
// integer line, never a half-point one. Spread is the home handicap
// (negative when the home team is favored).
type MarketLine struct {
	GameID   uuid.UUID `db:"game_id" json:"game_id"`
	Season   int       `db:"season" json:"season"`
	Week     int       `db:"week" json:"week"`
	HomeTeam string    `db:"home_team" json:"home_team"`
	AwayTeam string    `db:"away_team" json:"away_team"`

	Spread decimal.Decimal `db:"spread" json:"spread"`
	Total  decimal.Decimal `db:"total" json:"total"`

	ClosingSpread decimal.Decimal `db:"closing_spread" json:"closing_spread"`
	ClosingTotal  decimal.Decimal `db:"closing_total" json:"closing_total"`

	OpenedAt time.Time `db:"opened_at" json:"opened_at"`
	ClosedAt time.Time `db:"closed_at" json:"closed_at"`
}

// SpreadFloat returns the spread as a float for distribution math.
func (l *MarketLine) SpreadFloat() float64 {
	f, _ := l.Spread.Float64()
	return f
}

// TotalFloat returns the total as a float for distribution math.
func (l *MarketLine) TotalFloat() float64 {
	f, _ := l.Total.Float64()
	return f
}

// Validate checks the line carries usable values.
func (l *MarketLine) Validate() error {
	if l.HomeTeam == "" || l.AwayTeam == "" {
		return ErrInvalidLine
	}
	if l.Total.Sign() <= 0 {
		return ErrInvalidLine
	}
	return nil
}
