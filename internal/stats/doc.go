// Package stats provides a streaming accumulator for latency samples.
//
// The accumulator keeps three running sums (count, sum, sum of squares) and
// derives mean and population standard deviation on demand. It never stores
// individual samples, so memory use is constant regardless of iteration count.
//
// Example Usage:
//
//	var acc stats.Accumulator
//	acc.Push(elapsed.Seconds())
//	fmt.Println(acc.Mean(), acc.PopulationStdDev())
//
// Mean and PopulationStdDev divide by the sample count. Callers must push at
// least one sample before querying; with zero samples both return NaN.
package stats
