package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresBacktestRepository implements BacktestRepository for PostgreSQL
type PostgresBacktestRepository struct {
	db *database.DB
}

// NewPostgresBacktestRepository creates a new backtest repository
func NewPostgresBacktestRepository(db *database.DB) BacktestRepository {
	return &PostgresBacktestRepository{db: db}
}

// SaveRecords persists graded backtest records in one transaction.
// Re-running a backtest for the same game replaces the prior grade.
func (r *PostgresBacktestRepository) SaveRecords(ctx context.Context, records []*models.BacktestRecord) error {
	query := `
		INSERT INTO backtest_records (
			id, game_id, season, week, home_team, away_team,
			predicted_margin, actual_margin, predicted_total, actual_total,
			margin_error, total_error, conviction,
			spread_pick, spread_grade, total_pick, total_grade,
			spread_clv, total_clv, no_prediction, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW())
		ON CONFLICT (game_id) DO UPDATE SET
			predicted_margin = EXCLUDED.predicted_margin,
			actual_margin = EXCLUDED.actual_margin,
			predicted_total = EXCLUDED.predicted_total,
			actual_total = EXCLUDED.actual_total,
			margin_error = EXCLUDED.margin_error,
			total_error = EXCLUDED.total_error,
			conviction = EXCLUDED.conviction,
			spread_pick = EXCLUDED.spread_pick,
			spread_grade = EXCLUDED.spread_grade,
			total_pick = EXCLUDED.total_pick,
			total_grade = EXCLUDED.total_grade,
			spread_clv = EXCLUDED.spread_clv,
			total_clv = EXCLUDED.total_clv,
			no_prediction = EXCLUDED.no_prediction,
			created_at = NOW()
	`

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, rec := range records {
			if rec.ID == uuid.Nil {
				rec.ID = uuid.New()
			}
			_, err := tx.Exec(ctx, query,
				rec.ID, rec.GameID, rec.Season, rec.Week, rec.HomeTeam, rec.AwayTeam,
				rec.PredictedMargin, rec.ActualMargin, rec.PredictedTotal, rec.ActualTotal,
				rec.MarginError, rec.TotalError, rec.Conviction,
				rec.SpreadPick, rec.SpreadGrade, rec.TotalPick, rec.TotalGrade,
				rec.SpreadCLV, rec.TotalCLV, rec.NoPrediction,
			)
			if err != nil {
				return fmt.Errorf("failed to save backtest record: %w", err)
			}
		}
		return nil
	})
}

// GetBySeason retrieves all graded records for a season ordered by week
func (r *PostgresBacktestRepository) GetBySeason(ctx context.Context, season int) ([]*models.BacktestRecord, error) {
	query := `
		SELECT id, game_id, season, week, home_team, away_team,
		       predicted_margin, actual_margin, predicted_total, actual_total,
		       margin_error, total_error, conviction,
		       spread_pick, spread_grade, total_pick, total_grade,
		       spread_clv, total_clv, no_prediction, created_at
		FROM backtest_records
		WHERE season = $1
		ORDER BY week, home_team
	`

	rows, err := r.db.Pool().Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest records: %w", err)
	}
	defer rows.Close()

	var records []*models.BacktestRecord
	for rows.Next() {
		rec := &models.BacktestRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.GameID, &rec.Season, &rec.Week, &rec.HomeTeam, &rec.AwayTeam,
			&rec.PredictedMargin, &rec.ActualMargin, &rec.PredictedTotal, &rec.ActualTotal,
			&rec.MarginError, &rec.TotalError, &rec.Conviction,
			&rec.SpreadPick, &rec.SpreadGrade, &rec.TotalPick, &rec.TotalGrade,
			&rec.SpreadCLV, &rec.TotalCLV, &rec.NoPrediction,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan backtest record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
