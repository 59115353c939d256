package backtest

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

type profileRequest struct {
	teamID   string
	asOfWeek int
}

type fakeProfileSource struct {
	requests    []profileRequest
	unavailable map[string]bool
}

func (f *fakeProfileSource) BuildProfile(_ context.Context, teamID string, season, asOfWeek int, _ *models.SituationalOverrides) (*models.TeamProfile, error) {
	f.requests = append(f.requests, profileRequest{teamID: teamID, asOfWeek: asOfWeek})
	if f.unavailable[teamID] {
		return nil, &models.DataUnavailableError{TeamID: teamID, Season: season, Week: asOfWeek}
	}
	return &models.TeamProfile{TeamID: teamID, Season: season, AsOfWeek: asOfWeek}, nil
}

type fakeBatchRunner struct {
	margin float64
	total  float64
	tier   models.ConvictionTier
}

func (f *fakeBatchRunner) Run(_ context.Context, home, away *models.TeamProfile, season, week int, _ *models.MarketLine) (*models.SimulationBatch, error) {
	return &models.SimulationBatch{
		HomeTeam:        home.TeamID,
		AwayTeam:        away.TeamID,
		Season:          season,
		Week:            week,
		PredictedMargin: f.margin,
		PredictedTotal:  f.total,
		Conviction:      f.tier,
	}, nil
}

type fakeGameSource struct {
	games map[int][]*models.GameResult
}

func (f *fakeGameSource) GamesForWeek(_ context.Context, _, week int) ([]*models.GameResult, error) {
	return f.games[week], nil
}

type fakeLineSource struct {
	lines map[uuid.UUID]*models.MarketLine
}

func (f *fakeLineSource) LineForGame(_ context.Context, gameID uuid.UUID) (*models.MarketLine, error) {
	line, ok := f.lines[gameID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return line, nil
}

type fakeRecordStore struct {
	saved []*models.BacktestRecord
}

func (f *fakeRecordStore) SaveRecords(_ context.Context, records []*models.BacktestRecord) error {
	f.saved = append(f.saved, records...)
	return nil
}

func harnessLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func testConfig() Config {
	return Config{
		Season:        2023,
		StartWeek:     4,
		EndWeek:       5,
		MinEdgePoints: 1.0,
	}
}

func gameWith(week int, home, away string, homeScore, awayScore int) *models.GameResult {
	return &models.GameResult{
		GameID:    uuid.New(),
		Season:    2023,
		Week:      week,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
}

func lineFor(game *models.GameResult, spread, total, closingSpread, closingTotal string) *models.MarketLine {
	return &models.MarketLine{
		GameID:        game.GameID,
		Season:        game.Season,
		Week:          game.Week,
		HomeTeam:      game.HomeTeam,
		AwayTeam:      game.AwayTeam,
		Spread:        dec(spread),
		Total:         dec(total),
		ClosingSpread: dec(closingSpread),
		ClosingTotal:  dec(closingTotal),
	}
}

func TestHarnessBuildsProfilesAsOfGameWeek(t *testing.T) {
	g1 := gameWith(4, "KC", "LV", 27, 20)
	g2 := gameWith(5, "KC", "DEN", 24, 9)

	profiles := &fakeProfileSource{unavailable: map[string]bool{}}
	lines := &fakeLineSource{lines: map[uuid.UUID]*models.MarketLine{
		g1.GameID: lineFor(g1, "-3", "44.5", "-3.5", "45"),
		g2.GameID: lineFor(g2, "-7", "41", "-6.5", "40.5"),
	}}
	games := &fakeGameSource{games: map[int][]*models.GameResult{4: {g1}, 5: {g2}}}
	store := &fakeRecordStore{}

	h, err := NewHarness(testConfig(), profiles, &fakeBatchRunner{margin: 6, total: 46, tier: models.ConvictionMedium}, games, lines, store, harnessLogger())
	if err != nil {
		t.Fatalf("NewHarness returned error: %v", err)
	}

	if _, _, err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// Every profile request must be pinned to its game's own week so the
	// replay never sees stats from that week or later.
	if len(profiles.requests) != 4 {
		t.Fatalf("profile requests = %d, want 4", len(profiles.requests))
	}
	for _, req := range profiles.requests[:2] {
		if req.asOfWeek != 4 {
			t.Errorf("week 4 game requested profile as of week %d", req.asOfWeek)
		}
	}
	for _, req := range profiles.requests[2:] {
		if req.asOfWeek != 5 {
			t.Errorf("week 5 game requested profile as of week %d", req.asOfWeek)
		}
	}

	if len(store.saved) != 2 {
		t.Errorf("records saved = %d, want 2", len(store.saved))
	}
}

func TestHarnessGradesAgainstActuals(t *testing.T) {
	// Home wins by 7 against -3: predicted margin 6 gives a home pick that
	// cashes, and predicted total 46 against 44.5 gives an over that cashes.
	game := gameWith(4, "KC", "LV", 27, 20)

	profiles := &fakeProfileSource{unavailable: map[string]bool{}}
	lines := &fakeLineSource{lines: map[uuid.UUID]*models.MarketLine{
		game.GameID: lineFor(game, "-3", "44.5", "-3.5", "45"),
	}}
	games := &fakeGameSource{games: map[int][]*models.GameResult{4: {game}}}

	cfg := testConfig()
	cfg.EndWeek = 4
	h, err := NewHarness(cfg, profiles, &fakeBatchRunner{margin: 6, total: 46, tier: models.ConvictionMedium}, games, lines, nil, harnessLogger())
	if err != nil {
		t.Fatalf("NewHarness returned error: %v", err)
	}

	report, records, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.SpreadPick != models.PickHome || rec.SpreadGrade != models.BetGradeWin {
		t.Errorf("spread = %s/%s, want HOME/WIN", rec.SpreadPick, rec.SpreadGrade)
	}
	if rec.TotalPick != models.PickOver || rec.TotalGrade != models.BetGradeWin {
		t.Errorf("total = %s/%s, want OVER/WIN", rec.TotalPick, rec.TotalGrade)
	}
	// Placed -3 closed -3.5: the home bet laid fewer points than the
	// close, so the early number beat it.
	if !rec.SpreadCLV {
		t.Error("spread CLV should be true when the home line closes steeper")
	}
	// Placed 44.5 closed 45: the over got the better number.
	if !rec.TotalCLV {
		t.Error("total CLV should be true when the total closes higher")
	}

	if math.Abs(report.MarginMAE-1.0) > 1e-9 {
		t.Errorf("margin MAE = %f, want 1.0", report.MarginMAE)
	}
	if math.Abs(report.TotalMAE-1.0) > 1e-9 {
		t.Errorf("total MAE = %f, want 1.0", report.TotalMAE)
	}
}

func TestHarnessRecordsAbstentionWhenDataUnavailable(t *testing.T) {
	game := gameWith(4, "HOU", "IND", 21, 17)

	profiles := &fakeProfileSource{unavailable: map[string]bool{"HOU": true}}
	lines := &fakeLineSource{lines: map[uuid.UUID]*models.MarketLine{
		game.GameID: lineFor(game, "-1", "43", "-1", "43"),
	}}
	games := &fakeGameSource{games: map[int][]*models.GameResult{4: {game}}}

	cfg := testConfig()
	cfg.EndWeek = 4
	h, err := NewHarness(cfg, profiles, &fakeBatchRunner{tier: models.ConvictionLow}, games, lines, nil, harnessLogger())
	if err != nil {
		t.Fatalf("NewHarness returned error: %v", err)
	}

	report, records, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if !records[0].NoPrediction {
		t.Error("record should be marked NoPrediction")
	}
	if records[0].Recommended() {
		t.Error("abstention must not carry a recommendation")
	}
	if report.NoPredictions != 1 {
		t.Errorf("no predictions = %d, want 1", report.NoPredictions)
	}
}

func TestHarnessSkipsGamesWithoutLines(t *testing.T) {
	game := gameWith(4, "SEA", "ARI", 20, 10)

	profiles := &fakeProfileSource{unavailable: map[string]bool{}}
	lines := &fakeLineSource{lines: map[uuid.UUID]*models.MarketLine{}}
	games := &fakeGameSource{games: map[int][]*models.GameResult{4: {game}}}

	cfg := testConfig()
	cfg.EndWeek = 4
	h, err := NewHarness(cfg, profiles, &fakeBatchRunner{tier: models.ConvictionLow}, games, lines, nil, harnessLogger())
	if err != nil {
		t.Fatalf("NewHarness returned error: %v", err)
	}

	report, records, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0 for a game with no line", len(records))
	}
	if report.Games != 0 {
		t.Errorf("games = %d, want 0", report.Games)
	}
}
