package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/GriffinCanCode/brigade/internal/config"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "brigade: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "brigade: %v\n", err)
		os.Exit(1)
	}

	// Exit without joining the units.
	os.Exit(0)
}

// parseFlags loads the environment configuration and overrides it with
// the flags set in args.
func parseFlags(fs *flag.FlagSet, args []string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	b := &cfg.Bench

	fs.StringVar(&b.Mode, "bench", b.Mode, "Benchmark: relay or spawn")
	fs.StringVar(&b.Substrate, "substrate", b.Substrate, "Execution substrate: thread, task or inline")
	fs.StringVar(&b.Link, "link", b.Link, "Link kind: chan, socket or fd (default: substrate's own)")
	fs.StringVar(&b.Transform, "transform", b.Transform, "Per-unit transform: identity or increment")
	fs.IntVar(&b.Units, "units", b.Units, "Number of units in the chain or spawn batch")
	fs.IntVar(&b.Units, "threads", b.Units, "Alias for -units")
	fs.IntVar(&b.Units, "tasks", b.Units, "Alias for -units")
	fs.IntVar(&b.Iters, "iters", b.Iters, "Measured iterations")
	fs.IntVar(&b.Warmups, "warmups", b.Warmups, "Untimed warmup iterations")
	fs.IntVar(&b.Procs, "procs", b.Procs, "GOMAXPROCS (0 keeps the runtime default)")

	o := &cfg.Output
	fs.StringVar(&o.Format, "format", o.Format, "Report format: text, json, yaml or toml")
	fs.BoolVar(&o.Quiet, "quiet", o.Quiet, "Don't print time measurements")
	fs.StringVar(&o.Command, "command", o.Command, "Shell command to run after measuring; {pid} is replaced")
	fs.StringVar(&o.MetricsAddr, "metrics-addr", o.MetricsAddr, "Serve Prometheus /metrics on this address")

	l := &cfg.Logging
	fs.StringVar(&l.Level, "log-level", l.Level, "Log level: debug, info, warn or error")
	fs.BoolVar(&l.Development, "dev", l.Development, "Colored console logs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg.ApplyModeDefaults(func(key string) bool {
		if config.EnvSet(key) {
			return true
		}
		switch key {
		case config.EnvUnits:
			return set["units"] || set["threads"] || set["tasks"]
		case config.EnvIters:
			return set["iters"]
		case config.EnvWarmups:
			return set["warmups"]
		}
		return false
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
