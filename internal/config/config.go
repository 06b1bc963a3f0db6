package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/GriffinCanCode/brigade/internal/link"
	"github.com/GriffinCanCode/brigade/internal/report"
	"github.com/GriffinCanCode/brigade/internal/substrate"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Benchmark modes.
const (
	ModeRelay = "relay"
	ModeSpawn = "spawn"
)

// Spawn benchmark defaults, used when the counts were not set explicitly.
const (
	SpawnUnits   = 1000
	SpawnIters   = 100
	SpawnWarmups = 10
)

// Environment keys for the counts that have per-mode defaults.
const (
	EnvUnits   = "BRIGADE_UNITS"
	EnvIters   = "BRIGADE_ITERS"
	EnvWarmups = "BRIGADE_WARMUPS"
)

// Config holds all benchmark configuration.
type Config struct {
	Bench   BenchConfig
	Output  OutputConfig
	Logging LogConfig
}

// BenchConfig selects what is measured and how often.
type BenchConfig struct {
	Mode      string `envconfig:"BRIGADE_BENCH" default:"relay"`
	Substrate string `envconfig:"BRIGADE_SUBSTRATE" default:"task"`
	// Link is empty to use the substrate's default link kind.
	Link      string `envconfig:"BRIGADE_LINK"`
	Transform string `envconfig:"BRIGADE_TRANSFORM" default:"identity"`
	Units     int    `envconfig:"BRIGADE_UNITS" default:"500"`
	Iters     int    `envconfig:"BRIGADE_ITERS" default:"10000"`
	Warmups   int    `envconfig:"BRIGADE_WARMUPS" default:"100"`
	// Procs sets GOMAXPROCS when positive.
	Procs int `envconfig:"BRIGADE_PROCS" default:"0"`
}

// OutputConfig holds reporting configuration.
type OutputConfig struct {
	Format      string `envconfig:"BRIGADE_FORMAT" default:"text"`
	Quiet       bool   `envconfig:"BRIGADE_QUIET" default:"false"`
	Command     string `envconfig:"BRIGADE_COMMAND"`
	MetricsAddr string `envconfig:"BRIGADE_METRICS_ADDR"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"BRIGADE_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"BRIGADE_LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Bench: BenchConfig{
			Mode:      ModeRelay,
			Substrate: string(substrate.KindTask),
			Transform: string(substrate.Identity),
			Units:     500,
			Iters:     10000,
			Warmups:   100,
		},
		Output: OutputConfig{
			Format: string(report.FormatText),
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}

// EnvSet reports whether an environment variable is present.
func EnvSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// ApplyModeDefaults replaces the relay-oriented count defaults with the
// spawn ones when running the spawn benchmark. explicit reports whether the
// user chose a value for the given environment key.
func (c *Config) ApplyModeDefaults(explicit func(key string) bool) {
	if c.Bench.Mode != ModeSpawn {
		return
	}
	if !explicit(EnvUnits) {
		c.Bench.Units = SpawnUnits
	}
	if !explicit(EnvIters) {
		c.Bench.Iters = SpawnIters
	}
	if !explicit(EnvWarmups) {
		c.Bench.Warmups = SpawnWarmups
	}
}

// LinkKind resolves the configured link kind, falling back to the
// substrate default.
func (c *Config) LinkKind(s substrate.Substrate) (link.Kind, error) {
	if c.Bench.Link == "" {
		return s.DefaultLink(), nil
	}
	return link.ParseKind(c.Bench.Link)
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	b := c.Bench

	switch b.Mode {
	case ModeRelay, ModeSpawn:
	default:
		return fmt.Errorf("%w: unknown bench %q", ErrInvalidConfig, b.Mode)
	}

	sub, err := substrate.ParseKind(b.Substrate)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	s, err := substrate.New(sub)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	kind, err := c.LinkKind(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	tr, err := substrate.ParseTransform(b.Transform)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if b.Mode == ModeRelay && tr == substrate.Increment && !kind.Lossless() {
		return fmt.Errorf("%w: %s transform needs %s links, got %s", ErrInvalidConfig, tr, link.KindChan, kind)
	}

	if b.Units < 0 {
		return fmt.Errorf("%w: units must be non-negative", ErrInvalidConfig)
	}
	if b.Mode == ModeSpawn && b.Units < 1 {
		return fmt.Errorf("%w: spawn needs at least one unit", ErrInvalidConfig)
	}
	if b.Iters < 1 {
		return fmt.Errorf("%w: iterations must be positive", ErrInvalidConfig)
	}
	if b.Warmups < 0 {
		return fmt.Errorf("%w: warmups must be non-negative", ErrInvalidConfig)
	}
	if b.Procs < 0 {
		return fmt.Errorf("%w: procs must be non-negative", ErrInvalidConfig)
	}

	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
