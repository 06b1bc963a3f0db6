// Package report renders benchmark results.
//
// Text output follows the one-line summaries printed by the benchmark
// binaries. Structured output is available as JSON (bytedance/sonic),
// YAML (goccy/go-yaml) and TOML (pelletier/go-toml/v2).
//
// Durations are rendered by Duration, which picks the unit so that the
// integer part stays small and always prints three decimals:
//
//	0          → 0s
//	< 1.5µs    → 812.000ns
//	< 1.5ms    → 4.210µs
//	< 1.5s     → 12.003ms
//	otherwise  → 2.500s
package report
