package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresMarketLineRepository implements MarketLineRepository for PostgreSQL
type PostgresMarketLineRepository struct {
	db *database.DB
}

// NewPostgresMarketLineRepository creates a new market line repository
func NewPostgresMarketLineRepository(db *database.DB) MarketLineRepository {
	return &PostgresMarketLineRepository{db: db}
}

// Upsert inserts or replaces the line for a game
func (r *PostgresMarketLineRepository) Upsert(ctx context.Context, line *models.MarketLine) error {
	if err := line.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO market_lines (
			game_id, season, week, home_team, away_team,
			spread, total, closing_spread, closing_total,
			opened_at, closed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (game_id) DO UPDATE SET
			spread = EXCLUDED.spread,
			total = EXCLUDED.total,
			closing_spread = EXCLUDED.closing_spread,
			closing_total = EXCLUDED.closing_total,
			opened_at = EXCLUDED.opened_at,
			closed_at = EXCLUDED.closed_at
	`

	_, err := r.db.Pool().Exec(ctx, query,
		line.GameID, line.Season, line.Week, line.HomeTeam, line.AwayTeam,
		line.Spread, line.Total, line.ClosingSpread, line.ClosingTotal,
		line.OpenedAt, line.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert market line: %w", err)
	}

	return nil
}

// LineForGame retrieves the line for a game or models.ErrNotFound
func (r *PostgresMarketLineRepository) LineForGame(ctx context.Context, gameID uuid.UUID) (*models.MarketLine, error) {
	query := `
		SELECT game_id, season, week, home_team, away_team,
		       spread, total, closing_spread, closing_total,
		       opened_at, closed_at
		FROM market_lines
		WHERE game_id = $1
	`

	line := &models.MarketLine{}
	err := r.db.Pool().QueryRow(ctx, query, gameID).Scan(
		&line.GameID, &line.Season, &line.Week, &line.HomeTeam, &line.AwayTeam,
		&line.Spread, &line.Total, &line.ClosingSpread, &line.ClosingTotal,
		&line.OpenedAt, &line.ClosedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get market line: %w", err)
	}

	return line, nil
}

// LinesForWeek retrieves all lines for a season week
func (r *PostgresMarketLineRepository) LinesForWeek(ctx context.Context, season, week int) ([]*models.MarketLine, error) {
	query := `
		SELECT game_id, season, week, home_team, away_team,
		       spread, total, closing_spread, closing_total,
		       opened_at, closed_at
		FROM market_lines
		WHERE season = $1 AND week = $2
		ORDER BY game_id
	`

	rows, err := r.db.Pool().Query(ctx, query, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to query market lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.MarketLine
	for rows.Next() {
		line := &models.MarketLine{}
		if err := rows.Scan(
			&line.GameID, &line.Season, &line.Week, &line.HomeTeam, &line.AwayTeam,
			&line.Spread, &line.Total, &line.ClosingSpread, &line.ClosingTotal,
			&line.OpenedAt, &line.ClosedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan market line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
