package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// pgxExecutor is satisfied by both *pgxpool.Pool and pgx.Tx
type pgxExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const teamStatsColumns = `
	team_id, season, week,
	off_epa_per_play, def_epa_per_play,
	off_pass_epa_per_play, off_rush_epa_per_play,
	def_pass_epa_per_play, def_rush_epa_per_play,
	off_success_rate, def_success_rate,
	giveaway_rate, takeaway_rate,
	red_zone_td_rate, red_zone_td_rate_allowed,
	field_goal_pct, net_punt_average, kick_return_average,
	seconds_per_play, pass_rate, fourth_down_go_rate,
	pass_block, pass_rush, coverage, receiving, run_block, run_defense,
	updated_at`

// PostgresTeamStatsRepository implements TeamStatsRepository for PostgreSQL
type PostgresTeamStatsRepository struct {
	db *database.DB
}

// NewPostgresTeamStatsRepository creates a new team stats repository
func NewPostgresTeamStatsRepository(db *database.DB) TeamStatsRepository {
	return &PostgresTeamStatsRepository{db: db}
}

// Upsert inserts or replaces a team week snapshot
func (r *PostgresTeamStatsRepository) Upsert(ctx context.Context, stats *models.TeamWeekStats) error {
	return r.upsert(ctx, r.db.Pool(), stats)
}

func (r *PostgresTeamStatsRepository) upsert(ctx context.Context, exec pgxExecutor, stats *models.TeamWeekStats) error {
	query := `
		INSERT INTO team_week_stats (` + teamStatsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, NOW())
		ON CONFLICT (team_id, season, week) DO UPDATE SET
			off_epa_per_play = EXCLUDED.off_epa_per_play,
			def_epa_per_play = EXCLUDED.def_epa_per_play,
			off_pass_epa_per_play = EXCLUDED.off_pass_epa_per_play,
			off_rush_epa_per_play = EXCLUDED.off_rush_epa_per_play,
			def_pass_epa_per_play = EXCLUDED.def_pass_epa_per_play,
			def_rush_epa_per_play = EXCLUDED.def_rush_epa_per_play,
			off_success_rate = EXCLUDED.off_success_rate,
			def_success_rate = EXCLUDED.def_success_rate,
			giveaway_rate = EXCLUDED.giveaway_rate,
			takeaway_rate = EXCLUDED.takeaway_rate,
			red_zone_td_rate = EXCLUDED.red_zone_td_rate,
			red_zone_td_rate_allowed = EXCLUDED.red_zone_td_rate_allowed,
			field_goal_pct = EXCLUDED.field_goal_pct,
			net_punt_average = EXCLUDED.net_punt_average,
			kick_return_average = EXCLUDED.kick_return_average,
			seconds_per_play = EXCLUDED.seconds_per_play,
			pass_rate = EXCLUDED.pass_rate,
			fourth_down_go_rate = EXCLUDED.fourth_down_go_rate,
			pass_block = EXCLUDED.pass_block,
			pass_rush = EXCLUDED.pass_rush,
			coverage = EXCLUDED.coverage,
			receiving = EXCLUDED.receiving,
			run_block = EXCLUDED.run_block,
			run_defense = EXCLUDED.run_defense,
			updated_at = NOW()
	`

	var passBlock, passRush, coverage, receiving, runBlock, runDefense *float64
	if g := stats.Grades; g != nil {
		passBlock, passRush, coverage = &g.PassBlock, &g.PassRush, &g.Coverage
		receiving, runBlock, runDefense = &g.Receiving, &g.RunBlock, &g.RunDefense
	}

	_, err := exec.Exec(ctx, query,
		stats.TeamID, stats.Season, stats.Week,
		stats.OffEPAPerPlay, stats.DefEPAPerPlay,
		stats.OffPassEPAPerPlay, stats.OffRushEPAPerPlay,
		stats.DefPassEPAPerPlay, stats.DefRushEPAPerPlay,
		stats.OffSuccessRate, stats.DefSuccessRate,
		stats.GiveawayRate, stats.TakeawayRate,
		stats.RedZoneTDRate, stats.RedZoneTDRateAllowed,
		stats.FieldGoalPct, stats.NetPuntAverage, stats.KickReturnAverage,
		stats.SecondsPerPlay, stats.PassRate, stats.FourthDownGoRate,
		passBlock, passRush, coverage, receiving, runBlock, runDefense,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert team stats: %w", err)
	}

	return nil
}

// UpsertBatch inserts or replaces many snapshots in one transaction
func (r *PostgresTeamStatsRepository) UpsertBatch(ctx context.Context, stats []*models.TeamWeekStats) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, s := range stats {
			if err := r.upsert(ctx, tx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

// TeamStatsAsOf retrieves the latest snapshot strictly before asOfWeek
func (r *PostgresTeamStatsRepository) TeamStatsAsOf(ctx context.Context, teamID string, season, asOfWeek int) (*models.TeamWeekStats, error) {
	query := `
		SELECT ` + teamStatsColumns + `
		FROM team_week_stats
		WHERE team_id = $1 AND season = $2 AND week < $3
		ORDER BY week DESC
		LIMIT 1
	`

	stats := &models.TeamWeekStats{}
	var passBlock, passRush, coverage, receiving, runBlock, runDefense *float64
	err := r.db.Pool().QueryRow(ctx, query, teamID, season, asOfWeek).Scan(
		&stats.TeamID, &stats.Season, &stats.Week,
		&stats.OffEPAPerPlay, &stats.DefEPAPerPlay,
		&stats.OffPassEPAPerPlay, &stats.OffRushEPAPerPlay,
		&stats.DefPassEPAPerPlay, &stats.DefRushEPAPerPlay,
		&stats.OffSuccessRate, &stats.DefSuccessRate,
		&stats.GiveawayRate, &stats.TakeawayRate,
		&stats.RedZoneTDRate, &stats.RedZoneTDRateAllowed,
		&stats.FieldGoalPct, &stats.NetPuntAverage, &stats.KickReturnAverage,
		&stats.SecondsPerPlay, &stats.PassRate, &stats.FourthDownGoRate,
		&passBlock, &passRush, &coverage, &receiving, &runBlock, &runDefense,
		&stats.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team stats: %w", err)
	}

	// Grade columns are all present or all absent per provider snapshot
	if passBlock != nil {
		stats.Grades = &models.UnitGradeSet{
			PassBlock:  *passBlock,
			PassRush:   *passRush,
			Coverage:   *coverage,
			Receiving:  *receiving,
			RunBlock:   *runBlock,
			RunDefense: *runDefense,
		}
	}

	return stats, nil
}
