package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/models"
)

type fakeFeed struct {
	stats      []*models.TeamWeekStats
	lines      []*models.MarketLine
	results    []*models.GameResult
	resultsErr error
}

func (f *fakeFeed) Name() string { return "fake_feed" }

func (f *fakeFeed) TeamStatsForWeek(ctx context.Context, season, week int) ([]*models.TeamWeekStats, error) {
	return f.stats, nil
}

func (f *fakeFeed) LinesForWeek(ctx context.Context, season, week int) ([]*models.MarketLine, error) {
	return f.lines, nil
}

func (f *fakeFeed) ResultsForWeek(ctx context.Context, season, week int) ([]*models.GameResult, error) {
	if f.resultsErr != nil {
		return nil, f.resultsErr
	}
	return f.results, nil
}

type fakeStatsRepo struct {
	upserted []*models.TeamWeekStats
}

func (r *fakeStatsRepo) Upsert(ctx context.Context, stats *models.TeamWeekStats) error {
	r.upserted = append(r.upserted, stats)
	return nil
}

func (r *fakeStatsRepo) UpsertBatch(ctx context.Context, stats []*models.TeamWeekStats) error {
	r.upserted = append(r.upserted, stats...)
	return nil
}

func (r *fakeStatsRepo) TeamStatsAsOf(ctx context.Context, teamID string, season, asOfWeek int) (*models.TeamWeekStats, error) {
	return nil, models.ErrNotFound
}

type fakeGameRepo struct {
	created []*models.GameResult
}

func (r *fakeGameRepo) Create(ctx context.Context, game *models.GameResult) error {
	r.created = append(r.created, game)
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.GameResult, error) {
	return nil, models.ErrNotFound
}

func (r *fakeGameRepo) GamesForWeek(ctx context.Context, season, week int) ([]*models.GameResult, error) {
	return r.created, nil
}

func (r *fakeGameRepo) TeamsForSeason(ctx context.Context, season int) ([]string, error) {
	return nil, nil
}

type fakeLineRepo struct {
	upserted []*models.MarketLine
}

func (r *fakeLineRepo) Upsert(ctx context.Context, line *models.MarketLine) error {
	r.upserted = append(r.upserted, line)
	return nil
}

func (r *fakeLineRepo) LineForGame(ctx context.Context, gameID uuid.UUID) (*models.MarketLine, error) {
	return nil, models.ErrNotFound
}

func (r *fakeLineRepo) LinesForWeek(ctx context.Context, season, week int) ([]*models.MarketLine, error) {
	return r.upserted, nil
}

func newTestIngestion(feed *fakeFeed) (*IngestionService, *fakeStatsRepo, *fakeGameRepo, *fakeLineRepo) {
	logger := newTestLogger()
	statsRepo := &fakeStatsRepo{}
	gameRepo := &fakeGameRepo{}
	lineRepo := &fakeLineRepo{}

	svc := NewIngestionService(
		feed, statsRepo, gameRepo, lineRepo,
		NewDataValidator(logger), NewDataNormalizer(logger), logger,
	)
	return svc, statsRepo, gameRepo, lineRepo
}

func TestIngestWeekPersistsValidPayloads(t *testing.T) {
	bad := validSnapshot()
	bad.PassRate = 3.0

	feed := &fakeFeed{
		stats: []*models.TeamWeekStats{validSnapshot(), bad},
		lines: []*models.MarketLine{
			{
				Season: 2025, Week: 6,
				HomeTeam: "kc", AwayTeam: "buf",
				Spread: decimal.NewFromFloat(-2.5),
				Total:  decimal.NewFromFloat(47.5),
			},
		},
		results: []*models.GameResult{
			{
				Season: 2025, Week: 6,
				HomeTeam: "oak", AwayTeam: "den",
				HomeScore: 17, AwayScore: 13,
				KickoffAt: time.Date(2025, 10, 12, 20, 0, 0, 0, time.UTC),
			},
		},
	}

	svc, statsRepo, gameRepo, lineRepo := newTestIngestion(feed)

	metrics, err := svc.IngestWeek(context.Background(), 2025, 6)
	if err != nil {
		t.Fatalf("IngestWeek failed: %v", err)
	}

	if len(statsRepo.upserted) != 1 {
		t.Errorf("expected 1 persisted snapshot, got %d", len(statsRepo.upserted))
	}
	if metrics.ValidationErrors != 1 {
		t.Errorf("expected 1 validation error, got %d", metrics.ValidationErrors)
	}

	if len(lineRepo.upserted) != 1 {
		t.Fatalf("expected 1 persisted line, got %d", len(lineRepo.upserted))
	}
	line := lineRepo.upserted[0]
	if line.HomeTeam != "KC" || line.AwayTeam != "BUF" {
		t.Errorf("expected canonical team codes, got %s @ %s", line.AwayTeam, line.HomeTeam)
	}
	if line.GameID == uuid.Nil {
		t.Error("expected a minted game ID")
	}

	if len(gameRepo.created) != 1 {
		t.Fatalf("expected 1 persisted result, got %d", len(gameRepo.created))
	}
	if gameRepo.created[0].HomeTeam != "LV" {
		t.Errorf("expected relocated team code LV, got %s", gameRepo.created[0].HomeTeam)
	}
}

func TestIngestWeekToleratesUnplayedWeek(t *testing.T) {
	feed := &fakeFeed{
		stats:      []*models.TeamWeekStats{validSnapshot()},
		resultsErr: datasource.NewFeedError("fake_feed", datasource.ErrCodeNotFound, "no results", nil),
	}

	svc, statsRepo, gameRepo, _ := newTestIngestion(feed)

	metrics, err := svc.IngestWeek(context.Background(), 2025, 6)
	if err != nil {
		t.Fatalf("expected unplayed week to be tolerated, got %v", err)
	}
	if len(statsRepo.upserted) != 1 {
		t.Errorf("expected snapshot persisted despite missing results, got %d", len(statsRepo.upserted))
	}
	if len(gameRepo.created) != 0 {
		t.Errorf("expected no results persisted, got %d", len(gameRepo.created))
	}
	if metrics.Errors != 0 {
		t.Errorf("expected no errors recorded, got %d", metrics.Errors)
	}
}
