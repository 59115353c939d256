// Package montecarlo executes batches of independent game trials and
// aggregates them into published probability distributions.
package montecarlo

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	applog "github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/profile"
	"github.com/yourusername/gridiron-edge/internal/sim"
)

// Config tunes batch execution and conviction derivation.
type Config struct {
	Trials  int
	// MinTrials is the minimum surviving trial count below which the
	// batch is flagged INSUFFICIENT_SAMPLE instead of silently published.
	MinTrials int
	Workers   int
	// Seed enables bit-exact replay when non-zero; zero draws fresh
	// entropy per batch.
	Seed int64
	// MaxDuration is the wall-clock budget; exceeding it yields a
	// partial batch marked truncated rather than blocking.
	MaxDuration time.Duration
	// MaxDiscardRate flags the whole batch unreliable when too many
	// trials diverge.
	MaxDiscardRate float64

	MismatchClamp float64

	HighEdgePoints      float64
	LowEdgePoints       float64
	MaxConvictionStdDev float64
}

// DefaultConfig returns production batch tuning.
func DefaultConfig() Config {
	return Config{
		Trials:              5000,
		MinTrials:           1000,
		Workers:             0, // sized to available cores
		MaxDuration:         30 * time.Second,
		MaxDiscardRate:      0.02,
		MismatchClamp:       25,
		HighEdgePoints:      3.0,
		LowEdgePoints:       1.0,
		MaxConvictionStdDev: 11.5,
	}
}

// Runner executes the game orchestrator N times with independent
// randomness. Trials are embarrassingly parallel: each owns a private
// GameState and RNG stream and reads only immutable profiles, so the
// worker pool needs no locking.
type Runner struct {
	cfg      Config
	simCfg   sim.Config
	logger   *logrus.Logger
	batchLog *applog.SimulationLogger
}

// NewRunner creates a Monte Carlo runner.
func NewRunner(cfg Config, simCfg sim.Config, logger *logrus.Logger) (*Runner, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("trial count must be positive")
	}
	if cfg.MinTrials > cfg.Trials {
		return nil, fmt.Errorf("minimum trial count cannot exceed target")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Runner{cfg: cfg, simCfg: simCfg, logger: logger, batchLog: applog.NewSimulationLogger(logger)}, nil
}

// Run simulates one matchup. line may be nil when no market is attached;
// cover and over/under probabilities are then zero and, with no market
// edge to grade, conviction is LOW.
func (r *Runner) Run(ctx context.Context, home, away *models.TeamProfile, season, week int, line *models.MarketLine) (*models.SimulationBatch, error) {
	if home == nil || away == nil {
		return nil, fmt.Errorf("both team profiles are required")
	}

	started := time.Now()

	seed := r.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if r.cfg.MaxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.MaxDuration)
		defer cancel()
	}

	homeAttack := profile.ResolveMatchup(home, away, r.cfg.MismatchClamp)
	awayAttack := profile.ResolveMatchup(away, home, r.cfg.MismatchClamp)

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]models.SimulationTrial, r.cfg.Trials)
	survived := make([]bool, r.cfg.Trials)
	var discarded int64

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				rng := rand.New(rand.NewSource(trialSeed(seed, i)))
				game := sim.NewGame(r.simCfg, home, away, homeAttack, awayAttack, rng)
				trial := game.Simulate()
				if trial.Diverged {
					atomic.AddInt64(&discarded, 1)
					continue
				}
				results[i] = trial
				survived[i] = true
			}
		}()
	}

	truncated := false
dispatch:
	for i := 0; i < r.cfg.Trials; i++ {
		select {
		case indices <- i:
		case <-ctx.Done():
			truncated = true
			break dispatch
		}
	}
	close(indices)
	wg.Wait()

	// Collect survivors in index order so a fixed seed reproduces the
	// aggregate bit for bit.
	trials := make([]models.SimulationTrial, 0, r.cfg.Trials)
	for i, ok := range survived {
		if ok {
			trials = append(trials, results[i])
		}
	}

	batch := buildBatch(trials, batchMeta{
		homeTeam:  home.TeamID,
		awayTeam:  away.TeamID,
		season:    season,
		week:      week,
		target:    r.cfg.Trials,
		discarded: int(discarded),
		truncated: truncated,
		seed:      seed,
	}, line, r.cfg)

	elapsed := time.Since(started)
	metrics.RecordSimulationBatch(len(trials), int(discarded), string(batch.Conviction))
	metrics.RecordBatchDuration(elapsed.Seconds())
	durationMs := float64(elapsed.Microseconds()) / 1000
	r.batchLog.LogBatchComplete(home.TeamID, away.TeamID, season, week, len(trials), int(discarded),
		batch.PredictedMargin, string(batch.Conviction), durationMs)

	if batch.Unreliable {
		r.batchLog.LogBatchUnreliable(home.TeamID, away.TeamID, int(discarded), r.cfg.Trials)
	}

	return batch, nil
}

// trialSeed derives each trial's seed deterministically from the batch
// seed and trial index (splitmix-style mixing), giving independent
// streams and bit-exact replay under a fixed batch seed.
func trialSeed(batchSeed int64, trial int) int64 {
	z := uint64(batchSeed) + uint64(trial+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
