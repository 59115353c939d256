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

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Create stores a played game result
func (r *PostgresGameRepository) Create(ctx context.Context, game *models.GameResult) error {
	query := `
		INSERT INTO games (game_id, season, week, home_team, away_team, home_score, away_score, kickoff_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id) DO UPDATE SET
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			kickoff_at = EXCLUDED.kickoff_at
	`

	if game.GameID == uuid.Nil {
		game.GameID = uuid.New()
	}

	_, err := r.db.Pool().Exec(ctx, query,
		game.GameID, game.Season, game.Week,
		game.HomeTeam, game.AwayTeam,
		game.HomeScore, game.AwayScore, game.KickoffAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// GetByID retrieves a game result by its ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GameResult, error) {
	query := `
		SELECT game_id, season, week, home_team, away_team, home_score, away_score, kickoff_at
		FROM games
		WHERE game_id = $1
	`

	game := &models.GameResult{}
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&game.GameID, &game.Season, &game.Week,
		&game.HomeTeam, &game.AwayTeam,
		&game.HomeScore, &game.AwayScore, &game.KickoffAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GamesForWeek retrieves all played games for a season week ordered by kickoff
func (r *PostgresGameRepository) GamesForWeek(ctx context.Context, season, week int) ([]*models.GameResult, error) {
	query := `
		SELECT game_id, season, week, home_team, away_team, home_score, away_score, kickoff_at
		FROM games
		WHERE season = $1 AND week = $2
		ORDER BY kickoff_at, game_id
	`

	rows, err := r.db.Pool().Query(ctx, query, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []*models.GameResult
	for rows.Next() {
		game := &models.GameResult{}
		if err := rows.Scan(
			&game.GameID, &game.Season, &game.Week,
			&game.HomeTeam, &game.AwayTeam,
			&game.HomeScore, &game.AwayScore, &game.KickoffAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// TeamsForSeason lists every team that played at least one game in the season
func (r *PostgresGameRepository) TeamsForSeason(ctx context.Context, season int) ([]string, error) {
	query := `
		SELECT DISTINCT team FROM (
			SELECT home_team AS team FROM games WHERE season = $1
			UNION
			SELECT away_team AS team FROM games WHERE season = $1
		) t
		ORDER BY team
	`

	rows, err := r.db.Pool().Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}
