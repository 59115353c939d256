// Package calibration measures systematic scoring bias and produces damped
// corrections for the profile builder.
package calibration

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	applog "github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Observation pairs a stored pre-game prediction with the played result for
// one team week. Predictions must come from batches run before kickoff so the
// bias estimate never sees the result it is judged against.
type Observation struct {
	TeamID string
	Season int
	Week   int

	PredictedScored  float64
	PredictedAllowed float64
	ActualScored     float64
	ActualAllowed    float64
}

// ObservationSource provides the rolling window of prediction-vs-actual pairs
// for one team, most recent weeks strictly before beforeWeek.
type ObservationSource interface {
	TeamObservations(ctx context.Context, teamID string, season, beforeWeek, window int) ([]Observation, error)
}

// RecordStore persists versioned correction records.
type RecordStore interface {
	NextVersion(ctx context.Context, season, asOfWeek int) (int, error)
	SaveRecords(ctx context.Context, records []*models.CalibrationRecord) error
}

// Config holds calibration tuning parameters.
type Config struct {
	// WindowWeeks is the rolling window of completed weeks to measure over.
	WindowWeeks int
	// MinSampleWeeks is the minimum history before any correction is issued.
	MinSampleWeeks int
	// MaterialityStdErrs gates corrections on bias exceeding this many
	// standard errors, so noise in a short window is left alone.
	MaterialityStdErrs float64
	// Damping scales the issued correction below the full measured bias.
	Damping float64
	// MaxCorrectionPoints clamps any single correction.
	MaxCorrectionPoints float64
}

// DefaultConfig returns production calibration parameters.
func DefaultConfig() Config {
	return Config{
		WindowWeeks:         5,
		MinSampleWeeks:      3,
		MaterialityStdErrs:  1.0,
		Damping:             0.5,
		MaxCorrectionPoints: 3.5,
	}
}

// Validate checks config invariants.
func (c Config) Validate() error {
	if c.WindowWeeks <= 0 {
		return fmt.Errorf("window weeks must be positive, got %d", c.WindowWeeks)
	}
	if c.MinSampleWeeks <= 0 || c.MinSampleWeeks > c.WindowWeeks {
		return fmt.Errorf("min sample weeks must be in [1, %d], got %d", c.WindowWeeks, c.MinSampleWeeks)
	}
	if c.Damping <= 0 || c.Damping > 1 {
		return fmt.Errorf("damping must be in (0, 1], got %f", c.Damping)
	}
	if c.MaxCorrectionPoints <= 0 {
		return fmt.Errorf("max correction must be positive, got %f", c.MaxCorrectionPoints)
	}
	return nil
}

// Summary reports what a calibration pass did.
type Summary struct {
	Season            int
	Week              int
	Version           int
	RecordsWritten    int
	SkippedHistory    int
	SkippedImmaterial int
	StartedAt         time.Time
	Duration          time.Duration
}

// Calibrator runs the weekly bias measurement pass.
type Calibrator struct {
	cfg    Config
	source ObservationSource
	store  RecordStore
	logger *logrus.Logger
	calLog *applog.CalibrationLogger
}

// NewCalibrator creates a calibrator.
func NewCalibrator(cfg Config, source ObservationSource, store RecordStore, logger *logrus.Logger) (*Calibrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration config: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Calibrator{
		cfg:    cfg,
		source: source,
		store:  store,
		logger: logger,
		calLog: applog.NewCalibrationLogger(logger),
	}, nil
}

// RunWeek measures bias for every team over the rolling window ending before
// asOfWeek and writes one versioned record per material team metric. Teams
// with too little history are skipped, not failed.
func (c *Calibrator) RunWeek(ctx context.Context, season, asOfWeek int, teamIDs []string) (*Summary, error) {
	started := time.Now()
	summary := &Summary{Season: season, Week: asOfWeek, StartedAt: started}

	version, err := c.store.NextVersion(ctx, season, asOfWeek)
	if err != nil {
		metrics.RecordCalibrationRun("failure")
		return nil, fmt.Errorf("failed to allocate calibration version: %w", err)
	}
	summary.Version = version

	c.logger.WithFields(logrus.Fields{
		"season":  season,
		"week":    asOfWeek,
		"version": version,
		"teams":   len(teamIDs),
	}).Info("Starting calibration pass")

	var records []*models.CalibrationRecord
	for _, teamID := range teamIDs {
		obs, err := c.source.TeamObservations(ctx, teamID, season, asOfWeek, c.cfg.WindowWeeks)
		if err != nil {
			metrics.RecordCalibrationRun("failure")
			return nil, fmt.Errorf("failed to load observations for %s: %w", teamID, err)
		}

		if len(obs) < c.cfg.MinSampleWeeks {
			summary.SkippedHistory++
			metrics.RecordCalibrationSkip("insufficient_history")
			c.calLog.LogSkip(teamID, models.ErrCalibrationSkipped.Error(), len(obs))
			continue
		}

		for _, metric := range []string{models.MetricPointsScored, models.MetricPointsAllowed} {
			rec, material := c.measure(teamID, season, asOfWeek, version, metric, obs)
			metrics.RecordCalibrationBias(metric, rec.Bias)
			if !material {
				summary.SkippedImmaterial++
				metrics.RecordCalibrationSkip("immaterial_bias")
				continue
			}
			records = append(records, rec)
			metrics.UpdateActiveCorrection(teamID, metric, rec.Correction)
			c.calLog.LogCorrection(teamID, metric, rec.Bias, rec.Correction, rec.SampleWeeks)
		}
	}

	if len(records) > 0 {
		if err := c.store.SaveRecords(ctx, records); err != nil {
			metrics.RecordCalibrationRun("failure")
			return nil, fmt.Errorf("failed to save calibration records: %w", err)
		}
	}

	summary.RecordsWritten = len(records)
	summary.Duration = time.Since(started)

	status := "success"
	if summary.SkippedHistory > 0 {
		status = "partial"
	}
	metrics.RecordCalibrationRun(status)

	c.calLog.LogRunComplete(season, asOfWeek, version, summary.RecordsWritten,
		summary.SkippedHistory, summary.SkippedImmaterial,
		float64(summary.Duration.Microseconds())/1000)

	return summary, nil
}

// measure computes the bias record for one team metric. The second return is
// false when the bias is within noise of zero and no correction should issue.
func (c *Calibrator) measure(teamID string, season, asOfWeek, version int, metric string, obs []Observation) (*models.CalibrationRecord, bool) {
	residuals := make([]float64, len(obs))
	for i, o := range obs {
		switch metric {
		case models.MetricPointsAllowed:
			residuals[i] = o.PredictedAllowed - o.ActualAllowed
		default:
			residuals[i] = o.PredictedScored - o.ActualScored
		}
	}

	bias := stat.Mean(residuals, nil)
	rec := &models.CalibrationRecord{
		ID:          uuid.New(),
		TeamID:      teamID,
		Metric:      metric,
		Season:      season,
		AsOfWeek:    asOfWeek,
		Bias:        bias,
		Correction:  c.correction(bias),
		SampleWeeks: len(obs),
		Version:     version,
		CreatedAt:   time.Now().UTC(),
	}

	stderr := stat.StdDev(residuals, nil) / math.Sqrt(float64(len(residuals)))
	if math.Abs(bias) <= c.cfg.MaterialityStdErrs*stderr {
		return rec, false
	}
	return rec, true
}

// correction damps and clamps the measured bias. A positive bias means the
// simulator over-predicts, so the correction pushes the other way.
func (c *Calibrator) correction(bias float64) float64 {
	corr := -c.cfg.Damping * bias
	if corr > c.cfg.MaxCorrectionPoints {
		return c.cfg.MaxCorrectionPoints
	}
	if corr < -c.cfg.MaxCorrectionPoints {
		return -c.cfg.MaxCorrectionPoints
	}
	return corr
}
