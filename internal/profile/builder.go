// Package profile builds per-team rating snapshots and resolves pairwise
// matchup mismatches for the simulator.
package profile

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	applog "github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// StatsSource supplies per-team efficiency statistics aggregated through
// the week before asOfWeek. Implementations must return
// models.ErrNotFound (possibly wrapped) when no statistics exist.
type StatsSource interface {
	TeamStatsAsOf(ctx context.Context, teamID string, season, asOfWeek int) (*models.TeamWeekStats, error)
}

// CalibrationSource supplies the calibration corrections active for a team
// as of a given week. A nil source disables calibration.
type CalibrationSource interface {
	ActiveCorrections(ctx context.Context, teamID string, season, asOfWeek int) ([]*models.CalibrationRecord, error)
}

// Config holds profile construction tuning. All values are explicit
// configuration so multiple weeks and seasons can build concurrently
// without shared mutable state.
type Config struct {
	HomeFieldPoints float64
	// LeagueSuccessRate anchors proxy grade derivation.
	LeagueSuccessRate float64
	// ProxyGradeScale converts success-rate deviation to grade points.
	ProxyGradeScale float64
	// EPAPointsPerGamePlays converts a points-per-game calibration
	// correction into a per-play EPA shift.
	EPAPointsPerGamePlays float64
	// MismatchClamp bounds each matchup delta, in grade points.
	MismatchClamp float64
	// WeatherPenalty is the per-bucket multiplicative passing penalty.
	WeatherPenalty float64
	// ShortRestPenalty is the flat offensive efficiency multiplier for
	// short-rest teams.
	ShortRestPenalty float64
	// InjuryPenaltyMax is the offensive multiplier reduction at injury
	// severity 1.0.
	InjuryPenaltyMax float64
}

// DefaultConfig returns builder tuning anchored on league-wide baselines.
func DefaultConfig() Config {
	return Config{
		HomeFieldPoints:       1.6,
		LeagueSuccessRate:     0.43,
		ProxyGradeScale:       250,
		EPAPointsPerGamePlays: 62,
		MismatchClamp:         25,
		WeatherPenalty:        0.04,
		ShortRestPenalty:      0.97,
		InjuryPenaltyMax:      0.12,
	}
}

// Builder constructs immutable TeamProfiles from raw weekly statistics,
// calibration corrections, and situational overrides.
type Builder struct {
	cfg          Config
	stats        StatsSource
	calibrations CalibrationSource
	logger       *logrus.Logger
	buildLog     *applog.SimulationLogger
}

// NewBuilder creates a profile builder. stats is required; calibrations
// may be nil for uncalibrated construction.
func NewBuilder(cfg Config, stats StatsSource, calibrations CalibrationSource, logger *logrus.Logger) (*Builder, error) {
	if stats == nil {
		return nil, fmt.Errorf("stats source is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Builder{
		cfg:          cfg,
		stats:        stats,
		calibrations: calibrations,
		logger:       logger,
		buildLog:     applog.NewSimulationLogger(logger),
	}, nil
}

// BuildProfile builds the rating snapshot for one team as of a week.
// Missing statistics (byes, future weeks) surface as a hard
// DataUnavailableError: the caller gets "no prediction", never a silent
// league-average team. Missing advanced grades degrade softly to proxy
// mode and are logged.
func (b *Builder) BuildProfile(ctx context.Context, teamID string, season, asOfWeek int, overrides *models.SituationalOverrides) (*models.TeamProfile, error) {
	stats, err := b.stats.TeamStatsAsOf(ctx, teamID, season, asOfWeek)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &models.DataUnavailableError{TeamID: teamID, Season: season, Week: asOfWeek}
		}
		return nil, fmt.Errorf("failed to load stats for %s: %w", teamID, err)
	}

	p := &models.TeamProfile{
		TeamID:   teamID,
		Season:   season,
		AsOfWeek: asOfWeek,

		OffEPAPerPlay:     stats.OffEPAPerPlay,
		DefEPAPerPlay:     stats.DefEPAPerPlay,
		OffPassEPAPerPlay: stats.OffPassEPAPerPlay,
		OffRushEPAPerPlay: stats.OffRushEPAPerPlay,
		DefPassEPAPerPlay: stats.DefPassEPAPerPlay,
		DefRushEPAPerPlay: stats.DefRushEPAPerPlay,

		OffSuccessRate: stats.OffSuccessRate,
		DefSuccessRate: stats.DefSuccessRate,

		GiveawayRate: stats.GiveawayRate,
		TakeawayRate: stats.TakeawayRate,

		RedZoneTDRate:        stats.RedZoneTDRate,
		RedZoneTDRateAllowed: stats.RedZoneTDRateAllowed,

		FieldGoalPct:      stats.FieldGoalPct,
		NetPuntAverage:    stats.NetPuntAverage,
		KickReturnAverage: stats.KickReturnAverage,

		SecondsPerPlay: stats.SecondsPerPlay,
		PassRate:       stats.PassRate,
		Aggressiveness: stats.FourthDownGoRate,

		HomeFieldPoints: b.cfg.HomeFieldPoints,
	}

	if err := b.applyCalibration(ctx, p); err != nil {
		return nil, err
	}

	p.Units = b.buildUnits(teamID, stats)

	if overrides != nil {
		applyOverrides(p, overrides, b.cfg)
	}

	mode := "graded"
	if !p.HasAdvancedGrades() {
		mode = "proxy"
	}
	metrics.RecordProfileBuild(mode)
	b.buildLog.LogProfileBuild(teamID, season, asOfWeek, mode == "proxy", len(p.AppliedCorrections))

	return p, nil
}

func (b *Builder) buildUnits(teamID string, stats *models.TeamWeekStats) models.UnitGrades {
	if stats.Grades != nil {
		return models.GradedUnits{Set: *stats.Grades}
	}
	b.logger.WithFields(logrus.Fields{
		"team":   teamID,
		"season": stats.Season,
		"week":   stats.Week,
		"reason": models.ErrGradeMissing.Error(),
	}).Warn("Building profile in proxy mode")
	return models.ProxyUnits{
		Offense: proxyGrade(stats.OffSuccessRate, b.cfg),
		// Defensive success rate is allowed rate: lower is better, so the
		// deviation flips sign.
		Defense: proxyGrade(2*b.cfg.LeagueSuccessRate-stats.DefSuccessRate, b.cfg),
	}
}

func (b *Builder) applyCalibration(ctx context.Context, p *models.TeamProfile) error {
	if b.calibrations == nil {
		return nil
	}
	records, err := b.calibrations.ActiveCorrections(ctx, p.TeamID, p.Season, p.AsOfWeek)
	if err != nil {
		return fmt.Errorf("failed to load calibration corrections for %s: %w", p.TeamID, err)
	}
	if len(records) == 0 {
		return nil
	}

	p.AppliedCorrections = make(map[string]float64, len(records))
	for _, rec := range records {
		// Corrections are in points per game; convert to EPA per play.
		shift := rec.Correction / b.cfg.EPAPointsPerGamePlays
		switch rec.Metric {
		case models.MetricPointsScored:
			p.OffEPAPerPlay += shift
			p.OffPassEPAPerPlay += shift
			p.OffRushEPAPerPlay += shift
		case models.MetricPointsAllowed:
			p.DefEPAPerPlay += shift
			p.DefPassEPAPerPlay += shift
			p.DefRushEPAPerPlay += shift
		default:
			b.logger.WithField("metric", rec.Metric).Warn("Ignoring correction for unknown metric")
			continue
		}
		p.AppliedCorrections[rec.Metric] = rec.Correction
	}
	return nil
}

// proxyGrade maps a success rate onto the 0-100 grade scale so proxy
// profiles remain comparable with graded ones.
func proxyGrade(successRate float64, cfg Config) float64 {
	grade := 50 + (successRate-cfg.LeagueSuccessRate)*cfg.ProxyGradeScale
	return math.Max(1, math.Min(99, grade))
}

func applyOverrides(p *models.TeamProfile, o *models.SituationalOverrides, cfg Config) {
	mult := 1.0
	if o.WeatherSeverity > 0 {
		mult *= 1.0 - cfg.WeatherPenalty*float64(o.WeatherSeverity)
	}
	if o.ShortRest {
		mult *= cfg.ShortRestPenalty
	}
	if o.InjurySeverity > 0 {
		mult *= 1.0 - cfg.InjuryPenaltyMax*o.InjurySeverity
	}
	if mult == 1.0 {
		return
	}
	// Only positive efficiency shrinks toward zero; a bad offense does not
	// improve in a storm.
	p.OffEPAPerPlay = shrink(p.OffEPAPerPlay, mult)
	p.OffPassEPAPerPlay = shrink(p.OffPassEPAPerPlay, mult)
	p.OffRushEPAPerPlay = shrink(p.OffRushEPAPerPlay, mult)
	p.OffSuccessRate *= mult
}

func shrink(v, mult float64) float64 {
	if v > 0 {
		return v * mult
	}
	return v
}
