package config

import (
	"os"
	"testing"

	"github.com/GriffinCanCode/brigade/internal/link"
	"github.com/GriffinCanCode/brigade/internal/substrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Bench config
	assert.Equal(t, "relay", cfg.Bench.Mode)
	assert.Equal(t, "task", cfg.Bench.Substrate)
	assert.Equal(t, "", cfg.Bench.Link)
	assert.Equal(t, "identity", cfg.Bench.Transform)
	assert.Equal(t, 500, cfg.Bench.Units)
	assert.Equal(t, 10000, cfg.Bench.Iters)
	assert.Equal(t, 100, cfg.Bench.Warmups)
	assert.Equal(t, 0, cfg.Bench.Procs)

	// Output config
	assert.Equal(t, "text", cfg.Output.Format)
	assert.False(t, cfg.Output.Quiet)
	assert.Empty(t, cfg.Output.Command)
	assert.Empty(t, cfg.Output.MetricsAddr)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	// Should match defaults when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"BRIGADE_BENCH":        "spawn",
		"BRIGADE_SUBSTRATE":    "thread",
		"BRIGADE_LINK":         "chan",
		"BRIGADE_TRANSFORM":    "increment",
		"BRIGADE_UNITS":        "64",
		"BRIGADE_ITERS":        "20",
		"BRIGADE_WARMUPS":      "2",
		"BRIGADE_PROCS":        "1",
		"BRIGADE_FORMAT":       "json",
		"BRIGADE_QUIET":        "true",
		"BRIGADE_COMMAND":      "ps -p {pid}",
		"BRIGADE_METRICS_ADDR": ":9100",
		"BRIGADE_LOG_LEVEL":    "debug",
		"BRIGADE_LOG_DEV":      "true",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "spawn", cfg.Bench.Mode)
	assert.Equal(t, "thread", cfg.Bench.Substrate)
	assert.Equal(t, "chan", cfg.Bench.Link)
	assert.Equal(t, "increment", cfg.Bench.Transform)
	assert.Equal(t, 64, cfg.Bench.Units)
	assert.Equal(t, 20, cfg.Bench.Iters)
	assert.Equal(t, 2, cfg.Bench.Warmups)
	assert.Equal(t, 1, cfg.Bench.Procs)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Quiet)
	assert.Equal(t, "ps -p {pid}", cfg.Output.Command)
	assert.Equal(t, ":9100", cfg.Output.MetricsAddr)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	err := os.Setenv("BRIGADE_UNITS", "many")
	require.NoError(t, err)
	defer os.Unsetenv("BRIGADE_UNITS")

	_, err = Load()
	assert.Error(t, err)

	// Falls back to defaults
	cfg := LoadOrDefault()
	assert.Equal(t, 500, cfg.Bench.Units)
}

func TestApplyModeDefaults(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		explicit    map[string]bool
		wantUnits   int
		wantIters   int
		wantWarmups int
	}{
		{
			name:        "relay keeps relay defaults",
			mode:        ModeRelay,
			wantUnits:   500,
			wantIters:   10000,
			wantWarmups: 100,
		},
		{
			name:        "spawn switches to spawn defaults",
			mode:        ModeSpawn,
			wantUnits:   SpawnUnits,
			wantIters:   SpawnIters,
			wantWarmups: SpawnWarmups,
		},
		{
			name:        "spawn keeps explicit units",
			mode:        ModeSpawn,
			explicit:    map[string]bool{EnvUnits: true},
			wantUnits:   500,
			wantIters:   SpawnIters,
			wantWarmups: SpawnWarmups,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Bench.Mode = tt.mode

			cfg.ApplyModeDefaults(func(key string) bool { return tt.explicit[key] })

			assert.Equal(t, tt.wantUnits, cfg.Bench.Units)
			assert.Equal(t, tt.wantIters, cfg.Bench.Iters)
			assert.Equal(t, tt.wantWarmups, cfg.Bench.Warmups)
		})
	}
}

func TestLinkKind(t *testing.T) {
	cfg := Default()

	kind, err := cfg.LinkKind(substrate.Thread{})
	require.NoError(t, err)
	assert.Equal(t, link.KindFD, kind)

	cfg.Bench.Link = "chan"
	kind, err = cfg.LinkKind(substrate.Thread{})
	require.NoError(t, err)
	assert.Equal(t, link.KindChan, kind)

	cfg.Bench.Link = "pipe"
	_, err = cfg.LinkKind(substrate.Thread{})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero units relay", mutate: func(c *Config) { c.Bench.Units = 0 }},
		{name: "increment over chan", mutate: func(c *Config) {
			c.Bench.Transform = "increment"
			c.Bench.Link = "chan"
		}},
		{name: "unknown bench", mutate: func(c *Config) { c.Bench.Mode = "yield" }, wantErr: true},
		{name: "unknown substrate", mutate: func(c *Config) { c.Bench.Substrate = "fiber" }, wantErr: true},
		{name: "unknown link", mutate: func(c *Config) { c.Bench.Link = "pipe" }, wantErr: true},
		{name: "unknown transform", mutate: func(c *Config) { c.Bench.Transform = "double" }, wantErr: true},
		{name: "increment over socket", mutate: func(c *Config) { c.Bench.Transform = "increment" }, wantErr: true},
		{name: "negative units", mutate: func(c *Config) { c.Bench.Units = -1 }, wantErr: true},
		{name: "zero units spawn", mutate: func(c *Config) {
			c.Bench.Mode = ModeSpawn
			c.Bench.Units = 0
		}, wantErr: true},
		{name: "zero iterations", mutate: func(c *Config) { c.Bench.Iters = 0 }, wantErr: true},
		{name: "negative warmups", mutate: func(c *Config) { c.Bench.Warmups = -1 }, wantErr: true},
		{name: "negative procs", mutate: func(c *Config) { c.Bench.Procs = -2 }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvSet(t *testing.T) {
	os.Unsetenv(EnvIters)
	assert.False(t, EnvSet(EnvIters))

	err := os.Setenv(EnvIters, "5")
	require.NoError(t, err)
	defer os.Unsetenv(EnvIters)

	assert.True(t, EnvSet(EnvIters))
}
