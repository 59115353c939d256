package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresCalibrationRepository implements CalibrationRepository for PostgreSQL
type PostgresCalibrationRepository struct {
	db *database.DB
}

// NewPostgresCalibrationRepository creates a new calibration repository
func NewPostgresCalibrationRepository(db *database.DB) CalibrationRepository {
	return &PostgresCalibrationRepository{db: db}
}

// SaveRecords persists a calibration run's records in one transaction
func (r *PostgresCalibrationRepository) SaveRecords(ctx context.Context, records []*models.CalibrationRecord) error {
	query := `
		INSERT INTO calibration_records (
			id, team_id, metric, season, as_of_week,
			bias, correction, sample_weeks, version, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, rec := range records {
			if rec.ID == uuid.Nil {
				rec.ID = uuid.New()
			}
			_, err := tx.Exec(ctx, query,
				rec.ID, rec.TeamID, rec.Metric, rec.Season, rec.AsOfWeek,
				rec.Bias, rec.Correction, rec.SampleWeeks, rec.Version,
			)
			if err != nil {
				return fmt.Errorf("failed to save calibration record: %w", err)
			}
		}
		return nil
	})
}

// NextVersion allocates the next version number for a season week run
func (r *PostgresCalibrationRepository) NextVersion(ctx context.Context, season, asOfWeek int) (int, error) {
	query := `
		SELECT COALESCE(MAX(version), 0) + 1
		FROM calibration_records
		WHERE season = $1 AND as_of_week = $2
	`

	var version int
	if err := r.db.Pool().QueryRow(ctx, query, season, asOfWeek).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to allocate calibration version: %w", err)
	}

	return version, nil
}

// ActiveCorrections returns the most recent correction per metric for a team,
// considering only records with as_of_week at or before asOfWeek. At most one
// record per metric is returned, the one from the latest week and version.
func (r *PostgresCalibrationRepository) ActiveCorrections(ctx context.Context, teamID string, season, asOfWeek int) ([]*models.CalibrationRecord, error) {
	query := `
		SELECT DISTINCT ON (metric)
		       id, team_id, metric, season, as_of_week,
		       bias, correction, sample_weeks, version, created_at
		FROM calibration_records
		WHERE team_id = $1 AND season = $2 AND as_of_week <= $3
		ORDER BY metric, as_of_week DESC, version DESC
	`

	rows, err := r.db.Pool().Query(ctx, query, teamID, season, asOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to query active corrections: %w", err)
	}
	defer rows.Close()

	return scanCalibrationRecords(rows)
}

// History returns all calibration records for a team in a season, newest first
func (r *PostgresCalibrationRepository) History(ctx context.Context, teamID string, season int) ([]*models.CalibrationRecord, error) {
	query := `
		SELECT id, team_id, metric, season, as_of_week,
		       bias, correction, sample_weeks, version, created_at
		FROM calibration_records
		WHERE team_id = $1 AND season = $2
		ORDER BY as_of_week DESC, version DESC, metric
	`

	rows, err := r.db.Pool().Query(ctx, query, teamID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query calibration history: %w", err)
	}
	defer rows.Close()

	return scanCalibrationRecords(rows)
}

func scanCalibrationRecords(rows pgx.Rows) ([]*models.CalibrationRecord, error) {
	var records []*models.CalibrationRecord
	for rows.Next() {
		rec := &models.CalibrationRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.TeamID, &rec.Metric, &rec.Season, &rec.AsOfWeek,
			&rec.Bias, &rec.Correction, &rec.SampleWeeks, &rec.Version, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calibration record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
