// Package config provides 12-factor configuration for the brigade benchmarks.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags override environment variables.
//
// Configuration Sections:
//   - Bench: benchmark mode, substrate, link kind, transform and counts
//   - Output: report format, quiet mode, post-run command, metrics listener
//   - Logging: Log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("%d units on %s\n", cfg.Bench.Units, cfg.Bench.Substrate)
//
// Environment Variables:
//   - BRIGADE_BENCH, BRIGADE_SUBSTRATE, BRIGADE_LINK, BRIGADE_TRANSFORM
//   - BRIGADE_UNITS, BRIGADE_ITERS, BRIGADE_WARMUPS, BRIGADE_PROCS
//   - BRIGADE_FORMAT, BRIGADE_QUIET, BRIGADE_COMMAND, BRIGADE_METRICS_ADDR
//   - BRIGADE_LOG_LEVEL, BRIGADE_LOG_DEV
package config
