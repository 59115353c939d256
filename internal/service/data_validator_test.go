package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func validSnapshot() *models.TeamWeekStats {
	return &models.TeamWeekStats{
		TeamID:         "KC",
		Season:         2025,
		Week:           6,
		OffEPAPerPlay:  0.12,
		DefEPAPerPlay:  -0.04,
		OffSuccessRate: 0.47,
		DefSuccessRate: 0.41,
		GiveawayRate:   0.10,
		TakeawayRate:   0.13,
		RedZoneTDRate:  0.62,
		FieldGoalPct:   0.88,
		SecondsPerPlay: 27.5,
		PassRate:       0.58,
	}
}

func hasErrorContaining(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidateTeamStats(t *testing.T) {
	validator := NewDataValidator(newTestLogger())

	if errs := validator.ValidateTeamStats(validSnapshot()); len(errs) != 0 {
		t.Fatalf("expected valid snapshot, got errors: %v", errs)
	}

	tests := []struct {
		name    string
		mutate  func(*models.TeamWeekStats)
		wantErr string
	}{
		{
			name:    "missing team",
			mutate:  func(s *models.TeamWeekStats) { s.TeamID = "" },
			wantErr: "team_id",
		},
		{
			name:    "rate above one",
			mutate:  func(s *models.TeamWeekStats) { s.PassRate = 1.4 },
			wantErr: "pass_rate",
		},
		{
			name:    "zero pace",
			mutate:  func(s *models.TeamWeekStats) { s.SecondsPerPlay = 0 },
			wantErr: "seconds_per_play",
		},
		{
			name:    "implausible epa",
			mutate:  func(s *models.TeamWeekStats) { s.OffEPAPerPlay = 2.5 },
			wantErr: "off_epa_per_play",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := validSnapshot()
			tt.mutate(snap)
			errs := validator.ValidateTeamStats(snap)
			if !hasErrorContaining(errs, tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestValidateLine(t *testing.T) {
	validator := NewDataValidator(newTestLogger())

	line := &models.MarketLine{
		Season:   2025,
		Week:     6,
		HomeTeam: "KC",
		AwayTeam: "BUF",
		Spread:   decimal.NewFromFloat(-2.5),
		Total:    decimal.NewFromFloat(47.5),
	}
	if errs := validator.ValidateLine(line); len(errs) != 0 {
		t.Fatalf("expected valid line, got errors: %v", errs)
	}

	line.AwayTeam = "KC"
	if errs := validator.ValidateLine(line); !hasErrorContaining(errs, "must differ") {
		t.Errorf("expected same-team error, got %v", errs)
	}

	line.AwayTeam = "BUF"
	line.Total = decimal.Zero
	if errs := validator.ValidateLine(line); !hasErrorContaining(errs, "total") {
		t.Errorf("expected total error, got %v", errs)
	}
}

func TestValidateResult(t *testing.T) {
	validator := NewDataValidator(newTestLogger())

	result := &models.GameResult{
		Season:    2025,
		Week:      6,
		HomeTeam:  "KC",
		AwayTeam:  "BUF",
		HomeScore: 27,
		AwayScore: 20,
		KickoffAt: time.Date(2025, 10, 12, 17, 0, 0, 0, time.UTC),
	}
	if errs := validator.ValidateResult(result); len(errs) != 0 {
		t.Fatalf("expected valid result, got errors: %v", errs)
	}

	result.HomeScore = -3
	if errs := validator.ValidateResult(result); !hasErrorContaining(errs, "non-negative") {
		t.Errorf("expected score error, got %v", errs)
	}

	result.HomeScore = 27
	result.KickoffAt = time.Time{}
	if errs := validator.ValidateResult(result); !hasErrorContaining(errs, "kickoff_at") {
		t.Errorf("expected kickoff error, got %v", errs)
	}
}

func TestNormalizeTeamID(t *testing.T) {
	normalizer := NewDataNormalizer(newTestLogger())

	tests := []struct {
		in   string
		want string
	}{
		{"kc", "KC"},
		{" OAK ", "LV"},
		{"SD", "LAC"},
		{"LAR", "LA"},
		{"BUF", "BUF"},
	}

	for _, tt := range tests {
		if got := normalizer.NormalizeTeamID(tt.in); got != tt.want {
			t.Errorf("NormalizeTeamID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
