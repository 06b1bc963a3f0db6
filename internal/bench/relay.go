package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/brigade/internal/chain"
	"github.com/GriffinCanCode/brigade/internal/stats"
	"github.com/GriffinCanCode/brigade/internal/substrate"
	"go.uber.org/zap"
)

// RelayConfig configures a relay benchmark run.
type RelayConfig struct {
	RunID   string
	Chain   chain.Options
	Warmups int
	Iters   int
	// Entry is the payload injected at link 0 on every iteration.
	Entry    uint64
	Logger   *zap.Logger
	Observer Observer
}

// RelayResult is the outcome of a relay run.
type RelayResult struct {
	RunID     string        `json:"run_id" yaml:"run_id" toml:"run_id"`
	Substrate string        `json:"substrate" yaml:"substrate" toml:"substrate"`
	Link      string        `json:"link" yaml:"link" toml:"link"`
	Transform string        `json:"transform" yaml:"transform" toml:"transform"`
	Units     int           `json:"units" yaml:"units" toml:"units"`
	Warmups   int           `json:"warmups" yaml:"warmups" toml:"warmups"`
	Latency   stats.Summary `json:"latency" yaml:"latency" toml:"latency"`
	// PerUnit is mean latency divided by unit count, in seconds. Zero
	// when the chain has no units.
	PerUnit float64 `json:"per_unit_seconds" yaml:"per_unit_seconds" toml:"per_unit_seconds"`

	Stats stats.Accumulator `json:"-" yaml:"-" toml:"-"`
}

// RelayDriver runs the relay benchmark over one chain.
type RelayDriver struct {
	cfg      RelayConfig
	log      *zap.Logger
	observer Observer
	phase    Phase
	chain    *chain.Chain
}

// NewRelayDriver returns a driver in the Building phase.
func NewRelayDriver(cfg RelayConfig) *RelayDriver {
	return &RelayDriver{
		cfg:      cfg,
		log:      loggerOrNop(cfg.Logger),
		observer: observerOrNop(cfg.Observer),
		phase:    PhaseBuilding,
	}
}

// Phase returns the current phase.
func (d *RelayDriver) Phase() Phase { return d.phase }

// Chain returns the chain built by Build, or nil.
func (d *RelayDriver) Chain() *chain.Chain { return d.chain }

// Build constructs the chain on s. Units are running when it returns.
func (d *RelayDriver) Build(s substrate.Substrate) error {
	if d.phase != PhaseBuilding || d.chain != nil {
		return fmt.Errorf("build called in phase %s", d.phase)
	}

	start := time.Now()
	c, err := chain.Build(s, d.cfg.Chain)
	if err != nil {
		return fmt.Errorf("build chain: %w", err)
	}
	d.chain = c

	d.log.Info("Chain built",
		zap.String("substrate", string(s.Kind())),
		zap.String("link", string(c.Link())),
		zap.Int("units", c.Units()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Run performs the warmup and measured iterations and returns the result.
func (d *RelayDriver) Run() (*RelayResult, error) {
	if d.chain == nil {
		return nil, errors.New("run called before build")
	}
	if d.phase != PhaseBuilding {
		return nil, fmt.Errorf("run called in phase %s", d.phase)
	}
	if d.cfg.Iters < 1 {
		return nil, fmt.Errorf("iterations must be positive, got %d", d.cfg.Iters)
	}
	if d.cfg.Warmups < 0 {
		return nil, fmt.Errorf("warmups must be non-negative, got %d", d.cfg.Warmups)
	}

	c := d.chain
	want := c.Expect(d.cfg.Entry)

	d.enter(PhaseWarmup)
	for i := 0; i < d.cfg.Warmups; i++ {
		got, err := c.Relay(d.cfg.Entry)
		if err != nil {
			return nil, fmt.Errorf("warmup %d: %w", i, err)
		}
		if got != want {
			return nil, fmt.Errorf("%w: warmup %d: got %d, want %d", ErrProtocolViolation, i, got, want)
		}
	}

	d.enter(PhaseMeasuring)
	progress := newProgress()
	var acc stats.Accumulator
	for i := 0; i < d.cfg.Iters; i++ {
		start := time.Now()
		got, err := c.Relay(d.cfg.Entry)
		elapsed := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i, err)
		}
		if got != want {
			return nil, fmt.Errorf("%w: iteration %d: got %d, want %d", ErrProtocolViolation, i, got, want)
		}

		acc.PushDuration(elapsed)
		d.observer.Iteration(elapsed)
		progress.Do(func() {
			d.log.Info("Measuring", zap.Int("done", i+1), zap.Int("total", d.cfg.Iters))
		})
	}
	d.enter(PhaseDone)

	res := &RelayResult{
		RunID:     d.cfg.RunID,
		Substrate: string(c.Substrate().Kind()),
		Link:      string(c.Link()),
		Transform: string(c.Transform()),
		Units:     c.Units(),
		Warmups:   d.cfg.Warmups,
		Latency:   acc.Summary(),
		Stats:     acc,
	}
	if res.Units > 0 {
		res.PerUnit = res.Latency.Mean / float64(res.Units)
	}
	return res, nil
}

func (d *RelayDriver) enter(p Phase) {
	d.log.Debug("Phase transition", zap.Stringer("from", d.phase), zap.Stringer("to", p))
	d.phase = p
	d.observer.Phase(p)
}
