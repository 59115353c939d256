package calibration

import (
	"context"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

type fakeObservationSource struct {
	observations map[string][]Observation
}

func (f *fakeObservationSource) TeamObservations(_ context.Context, teamID string, _, _, window int) ([]Observation, error) {
	obs := f.observations[teamID]
	if len(obs) > window {
		obs = obs[len(obs)-window:]
	}
	return obs, nil
}

type fakeRecordStore struct {
	version int
	saved   []*models.CalibrationRecord
}

func (f *fakeRecordStore) NextVersion(_ context.Context, _, _ int) (int, error) {
	f.version++
	return f.version, nil
}

func (f *fakeRecordStore) SaveRecords(_ context.Context, records []*models.CalibrationRecord) error {
	f.saved = append(f.saved, records...)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

// repeatedBias builds a window where every week over-predicts scoring by the
// same amount, with a small alternating wobble so the variance is nonzero.
func repeatedBias(teamID string, weeks int, bias float64) []Observation {
	obs := make([]Observation, weeks)
	for i := range obs {
		wobble := 0.5
		if i%2 == 1 {
			wobble = -0.5
		}
		obs[i] = Observation{
			TeamID:           teamID,
			Season:           2023,
			Week:             i + 1,
			PredictedScored:  24 + bias + wobble,
			ActualScored:     24,
			PredictedAllowed: 21,
			ActualAllowed:    21 + wobble,
		}
	}
	return obs
}

func TestRunWeekDampsAndNegatesBias(t *testing.T) {
	source := &fakeObservationSource{observations: map[string][]Observation{
		"KC": repeatedBias("KC", 4, 4.0),
	}}
	store := &fakeRecordStore{}

	cal, err := NewCalibrator(DefaultConfig(), source, store, testLogger())
	if err != nil {
		t.Fatalf("NewCalibrator returned error: %v", err)
	}

	summary, err := cal.RunWeek(context.Background(), 2023, 6, []string{"KC"})
	if err != nil {
		t.Fatalf("RunWeek returned error: %v", err)
	}

	var scored *models.CalibrationRecord
	for _, rec := range store.saved {
		if rec.Metric == models.MetricPointsScored {
			scored = rec
		}
	}
	if scored == nil {
		t.Fatal("expected a points_scored record to be written")
	}
	if math.Abs(scored.Bias-4.0) > 1e-9 {
		t.Errorf("bias = %f, want 4.0", scored.Bias)
	}
	// Over-prediction must pull the profile down, at half strength.
	if math.Abs(scored.Correction-(-2.0)) > 1e-9 {
		t.Errorf("correction = %f, want -2.0", scored.Correction)
	}
	if scored.SampleWeeks != 4 {
		t.Errorf("sample weeks = %d, want 4", scored.SampleWeeks)
	}
	if summary.Version != 1 {
		t.Errorf("version = %d, want 1", summary.Version)
	}
}

func TestRunWeekClampsExtremeBias(t *testing.T) {
	source := &fakeObservationSource{observations: map[string][]Observation{
		"NYJ": repeatedBias("NYJ", 4, 20.0),
	}}
	store := &fakeRecordStore{}

	cal, err := NewCalibrator(DefaultConfig(), source, store, testLogger())
	if err != nil {
		t.Fatalf("NewCalibrator returned error: %v", err)
	}

	if _, err := cal.RunWeek(context.Background(), 2023, 6, []string{"NYJ"}); err != nil {
		t.Fatalf("RunWeek returned error: %v", err)
	}

	for _, rec := range store.saved {
		if math.Abs(rec.Correction) > DefaultConfig().MaxCorrectionPoints {
			t.Errorf("correction %f exceeds clamp %f", rec.Correction, DefaultConfig().MaxCorrectionPoints)
		}
	}
	found := false
	for _, rec := range store.saved {
		if rec.Metric == models.MetricPointsScored {
			found = true
			if rec.Correction != -DefaultConfig().MaxCorrectionPoints {
				t.Errorf("correction = %f, want clamp at %f", rec.Correction, -DefaultConfig().MaxCorrectionPoints)
			}
		}
	}
	if !found {
		t.Fatal("expected a points_scored record to be written")
	}
}

func TestRunWeekSkipsShortHistory(t *testing.T) {
	source := &fakeObservationSource{observations: map[string][]Observation{
		"CHI": repeatedBias("CHI", 2, 6.0),
	}}
	store := &fakeRecordStore{}

	cal, err := NewCalibrator(DefaultConfig(), source, store, testLogger())
	if err != nil {
		t.Fatalf("NewCalibrator returned error: %v", err)
	}

	summary, err := cal.RunWeek(context.Background(), 2023, 3, []string{"CHI"})
	if err != nil {
		t.Fatalf("RunWeek returned error: %v", err)
	}

	if summary.SkippedHistory != 1 {
		t.Errorf("skipped history = %d, want 1", summary.SkippedHistory)
	}
	if len(store.saved) != 0 {
		t.Errorf("records written = %d, want 0 for short history", len(store.saved))
	}
}

func TestRunWeekLeavesNoiseAlone(t *testing.T) {
	// Residuals alternate around zero, so the mean bias is tiny relative
	// to its standard error and no correction should issue.
	obs := make([]Observation, 5)
	for i := range obs {
		r := 3.0
		if i%2 == 1 {
			r = -3.0
		}
		obs[i] = Observation{
			TeamID:           "DET",
			Season:           2023,
			Week:             i + 1,
			PredictedScored:  24 + r,
			ActualScored:     24,
			PredictedAllowed: 21 + r,
			ActualAllowed:    21,
		}
	}
	source := &fakeObservationSource{observations: map[string][]Observation{"DET": obs}}
	store := &fakeRecordStore{}

	cal, err := NewCalibrator(DefaultConfig(), source, store, testLogger())
	if err != nil {
		t.Fatalf("NewCalibrator returned error: %v", err)
	}

	summary, err := cal.RunWeek(context.Background(), 2023, 6, []string{"DET"})
	if err != nil {
		t.Fatalf("RunWeek returned error: %v", err)
	}

	if len(store.saved) != 0 {
		t.Errorf("records written = %d, want 0 for immaterial bias", len(store.saved))
	}
	if summary.SkippedImmaterial != 2 {
		t.Errorf("skipped immaterial = %d, want 2", summary.SkippedImmaterial)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"zero window", func(c *Config) { c.WindowWeeks = 0 }, true},
		{"min above window", func(c *Config) { c.MinSampleWeeks = 10 }, true},
		{"damping above one", func(c *Config) { c.Damping = 1.5 }, true},
		{"negative clamp", func(c *Config) { c.MaxCorrectionPoints = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
