package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/calibration"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const batchColumns = `
	id, home_team, away_team, season, week,
	trials, target_trials, discarded,
	home_score_mean, home_score_median, home_score_stddev,
	away_score_mean, away_score_median, away_score_stddev,
	predicted_margin, margin_stddev, predicted_total, total_stddev,
	home_win_prob, away_win_prob, tie_prob,
	home_cover_prob, away_cover_prob, spread_push_prob,
	over_prob, under_prob, total_push_prob,
	conviction, truncated, insufficient_sample, unreliable,
	seed, created_at`

// PostgresSimulationBatchRepository implements SimulationBatchRepository for PostgreSQL
type PostgresSimulationBatchRepository struct {
	db *database.DB
}

// NewPostgresSimulationBatchRepository creates a new simulation batch repository
func NewPostgresSimulationBatchRepository(db *database.DB) SimulationBatchRepository {
	return &PostgresSimulationBatchRepository{db: db}
}

// Save persists a published batch
func (r *PostgresSimulationBatchRepository) Save(ctx context.Context, batch *models.SimulationBatch) error {
	query := `
		INSERT INTO simulation_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, NOW())
	`

	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}

	_, err := r.db.Pool().Exec(ctx, query,
		batch.ID, batch.HomeTeam, batch.AwayTeam, batch.Season, batch.Week,
		batch.Trials, batch.TargetTrials, batch.Discarded,
		batch.HomeScoreMean, batch.HomeScoreMedian, batch.HomeScoreStdDev,
		batch.AwayScoreMean, batch.AwayScoreMedian, batch.AwayScoreStdDev,
		batch.PredictedMargin, batch.MarginStdDev, batch.PredictedTotal, batch.TotalStdDev,
		batch.HomeWinProb, batch.AwayWinProb, batch.TieProb,
		batch.HomeCoverProb, batch.AwayCoverProb, batch.SpreadPushProb,
		batch.OverProb, batch.UnderProb, batch.TotalPushProb,
		batch.Conviction, batch.Truncated, batch.InsufficientSample, batch.Unreliable,
		batch.Seed,
	)
	if err != nil {
		return fmt.Errorf("failed to save simulation batch: %w", err)
	}

	return nil
}

// GetByID retrieves a batch by its ID
func (r *PostgresSimulationBatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SimulationBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM simulation_batches WHERE id = $1`

	batch, err := r.scanBatch(r.db.Pool().QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// LatestForMatchup retrieves the most recently published batch for a matchup week
func (r *PostgresSimulationBatchRepository) LatestForMatchup(ctx context.Context, homeTeam, awayTeam string, season, week int) (*models.SimulationBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM simulation_batches
		WHERE home_team = $1 AND away_team = $2 AND season = $3 AND week = $4
		ORDER BY created_at DESC
		LIMIT 1
	`

	batch, err := r.scanBatch(r.db.Pool().QueryRow(ctx, query, homeTeam, awayTeam, season, week))
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// TeamObservations builds the calibration window for one team: the most
// recent played weeks strictly before beforeWeek, paired with the last
// batch published before each game's kickoff.
func (r *PostgresSimulationBatchRepository) TeamObservations(ctx context.Context, teamID string, season, beforeWeek, window int) ([]calibration.Observation, error) {
	query := `
		SELECT g.week,
		       b.home_team = $1 AS is_home,
		       b.home_score_mean, b.away_score_mean,
		       g.home_score, g.away_score
		FROM games g
		JOIN LATERAL (
			SELECT home_team, home_score_mean, away_score_mean
			FROM simulation_batches sb
			WHERE sb.season = g.season AND sb.week = g.week
			  AND sb.home_team = g.home_team AND sb.away_team = g.away_team
			  AND sb.created_at < g.kickoff_at
			ORDER BY sb.created_at DESC
			LIMIT 1
		) b ON true
		WHERE g.season = $2 AND g.week < $3
		  AND (g.home_team = $1 OR g.away_team = $1)
		ORDER BY g.week DESC
		LIMIT $4
	`

	rows, err := r.db.Pool().Query(ctx, query, teamID, season, beforeWeek, window)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var obs []calibration.Observation
	for rows.Next() {
		var (
			week                 int
			isHome               bool
			homeMean, awayMean   float64
			homeScore, awayScore int
		)
		if err := rows.Scan(&week, &isHome, &homeMean, &awayMean, &homeScore, &awayScore); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}

		o := calibration.Observation{TeamID: teamID, Season: season, Week: week}
		if isHome {
			o.PredictedScored, o.PredictedAllowed = homeMean, awayMean
			o.ActualScored, o.ActualAllowed = float64(homeScore), float64(awayScore)
		} else {
			o.PredictedScored, o.PredictedAllowed = awayMean, homeMean
			o.ActualScored, o.ActualAllowed = float64(awayScore), float64(homeScore)
		}
		obs = append(obs, o)
	}

	return obs, rows.Err()
}

func (r *PostgresSimulationBatchRepository) scanBatch(row pgx.Row) (*models.SimulationBatch, error) {
	batch := &models.SimulationBatch{}
	err := row.Scan(
		&batch.ID, &batch.HomeTeam, &batch.AwayTeam, &batch.Season, &batch.Week,
		&batch.Trials, &batch.TargetTrials, &batch.Discarded,
		&batch.HomeScoreMean, &batch.HomeScoreMedian, &batch.HomeScoreStdDev,
		&batch.AwayScoreMean, &batch.AwayScoreMedian, &batch.AwayScoreStdDev,
		&batch.PredictedMargin, &batch.MarginStdDev, &batch.PredictedTotal, &batch.TotalStdDev,
		&batch.HomeWinProb, &batch.AwayWinProb, &batch.TieProb,
		&batch.HomeCoverProb, &batch.AwayCoverProb, &batch.SpreadPushProb,
		&batch.OverProb, &batch.UnderProb, &batch.TotalPushProb,
		&batch.Conviction, &batch.Truncated, &batch.InsufficientSample, &batch.Unreliable,
		&batch.Seed, &batch.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan simulation batch: %w", err)
	}
	return batch, nil
}
