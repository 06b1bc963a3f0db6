// Package bench drives the relay and spawn latency benchmarks.
//
// Relay benchmark phases:
//
//	Building → Warmup → Measuring → Done
//
//   - Building:  the chain is allocated and every unit is running
//   - Warmup:    W untimed relays, results checked but discarded
//   - Measuring: R timed relays, each elapsed time pushed to the accumulator
//   - Done:      statistics are final
//
// Spawn benchmark: W untimed batches then R timed batches. Each batch admits
// N execution units, recording the span from the first admission request to
// the return of the last, and for every unit the delay between its admission
// request and the moment its body starts. The driver joins every unit before
// the next batch begins.
//
// Every anomaly is fatal. A run whose measurement loop misbehaved cannot
// produce trustworthy statistics, so drivers return on the first error
// without retrying.
//
// Timed windows contain only the operation being measured; logging,
// metrics and payload checks happen after the end timestamp is taken.
package bench
