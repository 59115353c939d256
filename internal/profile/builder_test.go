package profile

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

type fakeStatsSource struct {
	stats map[string]*models.TeamWeekStats
	calls int
}

func (f *fakeStatsSource) TeamStatsAsOf(_ context.Context, teamID string, _, _ int) (*models.TeamWeekStats, error) {
	f.calls++
	if s, ok := f.stats[teamID]; ok {
		return s, nil
	}
	return nil, models.ErrNotFound
}

type fakeCalibrationSource struct {
	records []*models.CalibrationRecord
}

func (f *fakeCalibrationSource) ActiveCorrections(_ context.Context, _ string, _, _ int) ([]*models.CalibrationRecord, error) {
	return f.records, nil
}

func baseStats(teamID string) *models.TeamWeekStats {
	return &models.TeamWeekStats{
		TeamID:         teamID,
		Season:         2025,
		Week:           4,
		OffEPAPerPlay:  0.08,
		DefEPAPerPlay:  -0.02,
		OffSuccessRate: 0.47,
		DefSuccessRate: 0.41,
		GiveawayRate:   0.10,
		TakeawayRate:   0.13,
		SecondsPerPlay: 27.2,
		PassRate:       0.60,
	}
}

func TestBuildProfileMissingStatsAbstains(t *testing.T) {
	builder, err := NewBuilder(DefaultConfig(), &fakeStatsSource{}, nil, newTestLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = builder.BuildProfile(context.Background(), "KC", 2025, 5, nil)
	if err == nil {
		t.Fatal("expected an error for missing stats")
	}
	if !models.IsDataUnavailable(err) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}

func TestBuildProfileGradedMode(t *testing.T) {
	stats := baseStats("KC")
	stats.Grades = &models.UnitGradeSet{
		PassBlock: 74, PassRush: 81, Coverage: 69,
		Receiving: 77, RunBlock: 62, RunDefense: 58,
	}
	source := &fakeStatsSource{stats: map[string]*models.TeamWeekStats{"KC": stats}}
	builder, _ := NewBuilder(DefaultConfig(), source, nil, newTestLogger())

	p, err := builder.BuildProfile(context.Background(), "KC", 2025, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.HasAdvancedGrades() {
		t.Fatal("profile with provider grades should be graded")
	}
	if g, ok := p.Units.Grade(models.UnitPassBlock); !ok || g != 74 {
		t.Fatalf("pass block grade: got %v (ok=%v)", g, ok)
	}
}

func TestBuildProfileProxyMode(t *testing.T) {
	cfg := DefaultConfig()
	source := &fakeStatsSource{stats: map[string]*models.TeamWeekStats{"KC": baseStats("KC")}}
	builder, _ := NewBuilder(cfg, source, nil, newTestLogger())

	p, err := builder.BuildProfile(context.Background(), "KC", 2025, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.HasAdvancedGrades() {
		t.Fatal("profile without provider grades must degrade to proxy mode")
	}

	// Offense proxy: 50 + (0.47-0.43)*250 = 60.
	if g, ok := p.Units.Grade(models.UnitRunBlock); !ok || g < 59.9 || g > 60.1 {
		t.Fatalf("offense proxy grade: got %v", g)
	}
	// Defense proxy flips the deviation: allowed 0.41 is better than league.
	if g, ok := p.Units.Grade(models.UnitCoverage); !ok || g <= 50 {
		t.Fatalf("strong defense should grade above 50, got %v", g)
	}
}

func TestBuildProfileAppliesCalibration(t *testing.T) {
	cfg := DefaultConfig()
	source := &fakeStatsSource{stats: map[string]*models.TeamWeekStats{"KC": baseStats("KC")}}
	cal := &fakeCalibrationSource{records: []*models.CalibrationRecord{
		{TeamID: "KC", Metric: models.MetricPointsScored, Correction: -1.24},
		{TeamID: "KC", Metric: "unknown_metric", Correction: 9.9},
	}}
	builder, _ := NewBuilder(cfg, source, cal, newTestLogger())

	p, err := builder.BuildProfile(context.Background(), "KC", 2025, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 0.08 + (-1.24 / cfg.EPAPointsPerGamePlays)
	if diff := p.OffEPAPerPlay - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("off EPA after correction: want %v, got %v", want, p.OffEPAPerPlay)
	}
	if got := p.AppliedCorrections[models.MetricPointsScored]; got != -1.24 {
		t.Fatalf("applied correction not recorded: %v", got)
	}
	if _, ok := p.AppliedCorrections["unknown_metric"]; ok {
		t.Fatal("unknown metric must be ignored, not applied")
	}
}

func TestOverridesShrinkOnlyPositiveEfficiency(t *testing.T) {
	cfg := DefaultConfig()
	stats := baseStats("KC")
	stats.OffRushEPAPerPlay = -0.05
	source := &fakeStatsSource{stats: map[string]*models.TeamWeekStats{"KC": stats}}
	builder, _ := NewBuilder(cfg, source, nil, newTestLogger())

	p, err := builder.BuildProfile(context.Background(), "KC", 2025, 5, &models.SituationalOverrides{WeatherSeverity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.OffEPAPerPlay >= 0.08 {
		t.Fatalf("positive efficiency should shrink in bad weather, got %v", p.OffEPAPerPlay)
	}
	if p.OffRushEPAPerPlay != -0.05 {
		t.Fatalf("a bad rushing attack does not improve in a storm, got %v", p.OffRushEPAPerPlay)
	}
}

func TestResolveMatchupClampsDeltas(t *testing.T) {
	off := &models.TeamProfile{TeamID: "KC", Units: models.GradedUnits{Set: models.UnitGradeSet{
		PassBlock: 95, Receiving: 80, RunBlock: 70,
	}}}
	def := &models.TeamProfile{TeamID: "CAR", Units: models.GradedUnits{Set: models.UnitGradeSet{
		PassRush: 40, Coverage: 60, RunDefense: 55,
	}}}

	ctx := ResolveMatchup(off, def, 25)
	if ctx.PassProtection != 25 {
		t.Fatalf("55-point mismatch must clamp to 25, got %v", ctx.PassProtection)
	}
	if ctx.Coverage != 20 {
		t.Fatalf("coverage mismatch: want 20, got %v", ctx.Coverage)
	}
	if ctx.RunBlock != 15 {
		t.Fatalf("run block mismatch: want 15, got %v", ctx.RunBlock)
	}
}

func TestResolveMatchupMissingGradeIsZero(t *testing.T) {
	off := &models.TeamProfile{TeamID: "KC", Units: models.GradedUnits{Set: models.UnitGradeSet{
		Receiving: 80,
	}}}
	def := &models.TeamProfile{TeamID: "CAR", Units: models.GradedUnits{Set: models.UnitGradeSet{
		Coverage: 60, PassRush: 70,
	}}}

	ctx := ResolveMatchup(off, def, 25)
	if ctx.PassProtection != 0 {
		t.Fatalf("missing pass block grade must zero the mismatch, got %v", ctx.PassProtection)
	}

	bare := &models.TeamProfile{TeamID: "NYJ"}
	if got := ResolveMatchup(bare, def, 25); got.Coverage != 0 || got.RunBlock != 0 {
		t.Fatalf("nil units must produce zero mismatches, got %+v", got)
	}
}

func TestCachedBuilderReusesProfiles(t *testing.T) {
	source := &fakeStatsSource{stats: map[string]*models.TeamWeekStats{"KC": baseStats("KC")}}
	builder, _ := NewBuilder(DefaultConfig(), source, nil, newTestLogger())
	cached := NewCachedBuilder(builder, time.Minute, newTestLogger())

	ctx := context.Background()
	first, err := cached.BuildProfile(ctx, "KC", 2025, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cached.BuildProfile(ctx, "KC", 2025, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected one stats fetch for two builds, got %d", source.calls)
	}
	if first != second {
		t.Fatal("cached build should return the same profile instance")
	}

	// Overrides are game-specific and bypass the cache.
	if _, err := cached.BuildProfile(ctx, "KC", 2025, 5, &models.SituationalOverrides{ShortRest: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("override build must bypass the cache, got %d fetches", source.calls)
	}
}
