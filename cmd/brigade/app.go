package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/GriffinCanCode/brigade/internal/bench"
	"github.com/GriffinCanCode/brigade/internal/chain"
	"github.com/GriffinCanCode/brigade/internal/command"
	"github.com/GriffinCanCode/brigade/internal/config"
	"github.com/GriffinCanCode/brigade/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/brigade/internal/logging"
	"github.com/GriffinCanCode/brigade/internal/report"
	"github.com/GriffinCanCode/brigade/internal/shared/id"
	"github.com/GriffinCanCode/brigade/internal/substrate"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// run executes one benchmark described by cfg and writes the report to
// out. Units started for the relay benchmark are left running.
func run(cfg *config.Config, out io.Writer) error {
	runID := id.NewRunID()

	base, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Quiet:       cfg.Output.Quiet,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger := base.WithRun(runID.String())
	defer logger.Sync()

	if cfg.Bench.Procs > 0 {
		runtime.GOMAXPROCS(cfg.Bench.Procs)
	}

	kind, err := substrate.ParseKind(cfg.Bench.Substrate)
	if err != nil {
		return err
	}
	s, err := substrate.New(kind)
	if err != nil {
		return err
	}
	linkKind, err := cfg.LinkKind(s)
	if err != nil {
		return err
	}
	transform, err := substrate.ParseTransform(cfg.Bench.Transform)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	labels := prometheus.Labels{"bench": cfg.Bench.Mode, "substrate": string(kind)}
	if cfg.Bench.Mode == config.ModeRelay {
		labels["link"] = string(linkKind)
	}
	metrics := monitoring.NewMetrics(labels)
	metrics.SetUnits(cfg.Bench.Units)
	if cfg.Output.MetricsAddr != "" {
		srv, err := metrics.Serve(cfg.Output.MetricsAddr)
		if err != nil {
			return fmt.Errorf("failed to start metrics listener: %w", err)
		}
		defer srv.Close()
		logger.Info("Serving metrics", zap.String("addr", "http://"+srv.Addr()+"/metrics"))
	}

	logger.Info(fmt.Sprintf("%d tasks, %d iterations:", cfg.Bench.Units, cfg.Bench.Iters),
		zap.String("bench", cfg.Bench.Mode),
		zap.String("substrate", string(kind)),
	)

	// Increment chains count hops from zero; byte chains relay '*'.
	entry := uint64('*')
	if transform == substrate.Increment {
		entry = 0
	}

	var result any
	switch cfg.Bench.Mode {
	case config.ModeSpawn:
		result, err = bench.RunSpawn(s, bench.SpawnConfig{
			RunID:    runID.String(),
			Units:    cfg.Bench.Units,
			Warmups:  cfg.Bench.Warmups,
			Iters:    cfg.Bench.Iters,
			Logger:   logger.Logger,
			Observer: metrics,
		})
	default:
		driver := bench.NewRelayDriver(bench.RelayConfig{
			RunID: runID.String(),
			Chain: chain.Options{
				Units:     cfg.Bench.Units,
				Link:      linkKind,
				Transform: transform,
			},
			Warmups:  cfg.Bench.Warmups,
			Iters:    cfg.Bench.Iters,
			Entry:    entry,
			Logger:   logger.Logger,
			Observer: metrics,
		})
		if err = driver.Build(s); err == nil {
			result, err = driver.Run()
		}
	}
	if err != nil {
		logger.Error("Benchmark failed", zap.Error(err))
		return err
	}

	if !cfg.Output.Quiet {
		if err := report.Write(out, format, result); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if cfg.Output.Command != "" {
		logger.Info("Running command", zap.String("command", cfg.Output.Command))
		if err := command.Run(cfg.Output.Command); err != nil {
			logger.Error("Command failed", zap.Error(err))
			return err
		}
	}
	return nil
}
