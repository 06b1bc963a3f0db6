package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/brigade/internal/stats"
	"github.com/GriffinCanCode/brigade/internal/substrate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrSpawnFailed wraps a unit that could not be admitted or failed to run.
var ErrSpawnFailed = errors.New("spawn failed")

// SpawnConfig configures a spawn benchmark run.
type SpawnConfig struct {
	RunID    string
	Units    int
	Warmups  int
	Iters    int
	Logger   *zap.Logger
	Observer Observer
}

// SpawnResult is the outcome of a spawn run.
type SpawnResult struct {
	RunID     string `json:"run_id" yaml:"run_id" toml:"run_id"`
	Substrate string `json:"substrate" yaml:"substrate" toml:"substrate"`
	Units     int    `json:"units" yaml:"units" toml:"units"`
	Warmups   int    `json:"warmups" yaml:"warmups" toml:"warmups"`
	// Creation holds one sample per batch: first admission request to
	// return of the last.
	Creation stats.Summary `json:"creation" yaml:"creation" toml:"creation"`
	// CreationPerUnit is mean batch creation time divided by unit count.
	CreationPerUnit float64 `json:"creation_per_unit_seconds" yaml:"creation_per_unit_seconds" toml:"creation_per_unit_seconds"`
	// StartLatency holds one sample per unit: admission request to body start.
	StartLatency stats.Summary `json:"start_latency" yaml:"start_latency" toml:"start_latency"`

	CreationStats stats.Accumulator `json:"-" yaml:"-" toml:"-"`
	StartStats    stats.Accumulator `json:"-" yaml:"-" toml:"-"`
}

// spawner times batches of unit admissions on one substrate.
type spawner struct {
	sub     substrate.Substrate
	issued  []time.Time
	started []time.Time
}

// batch admits len(issued) units, joins them all, and returns the creation span.
func (sp *spawner) batch() (time.Duration, error) {
	var g errgroup.Group

	begin := time.Now()
	for i := range sp.issued {
		sp.issued[i] = time.Now()
		sp.sub.Go(&g, func() error {
			sp.started[i] = time.Now()
			return nil
		})
	}
	creation := time.Since(begin)

	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}
	return creation, nil
}

// RunSpawn runs the spawn benchmark on s.
func RunSpawn(s substrate.Substrate, cfg SpawnConfig) (*SpawnResult, error) {
	if cfg.Units < 1 {
		return nil, fmt.Errorf("units must be positive, got %d", cfg.Units)
	}
	if cfg.Iters < 1 {
		return nil, fmt.Errorf("iterations must be positive, got %d", cfg.Iters)
	}
	if cfg.Warmups < 0 {
		return nil, fmt.Errorf("warmups must be non-negative, got %d", cfg.Warmups)
	}

	log := loggerOrNop(cfg.Logger)
	observer := observerOrNop(cfg.Observer)

	sp := &spawner{
		sub:     s,
		issued:  make([]time.Time, cfg.Units),
		started: make([]time.Time, cfg.Units),
	}

	observer.Phase(PhaseWarmup)
	for i := 0; i < cfg.Warmups; i++ {
		if _, err := sp.batch(); err != nil {
			return nil, fmt.Errorf("warmup batch %d: %w", i, err)
		}
	}

	observer.Phase(PhaseMeasuring)
	progress := newProgress()
	var creation, start stats.Accumulator
	for i := 0; i < cfg.Iters; i++ {
		span, err := sp.batch()
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}

		creation.PushDuration(span)
		observer.Batch(span)
		for j := range sp.issued {
			latency := sp.started[j].Sub(sp.issued[j])
			start.PushDuration(latency)
			observer.Start(latency)
		}

		progress.Do(func() {
			log.Info("Measuring", zap.Int("done", i+1), zap.Int("total", cfg.Iters))
		})
	}
	observer.Phase(PhaseDone)

	return &SpawnResult{
		RunID:           cfg.RunID,
		Substrate:       string(s.Kind()),
		Units:           cfg.Units,
		Warmups:         cfg.Warmups,
		Creation:        creation.Summary(),
		CreationPerUnit: creation.Mean() / float64(cfg.Units),
		StartLatency:    start.Summary(),
		CreationStats:   creation,
		StartStats:      start,
	}, nil
}
