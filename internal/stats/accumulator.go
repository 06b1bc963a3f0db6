package stats

import (
	"math"
	"time"
)

// Accumulator holds running sums over pushed samples.
// The zero value is ready to use. Not safe for concurrent use.
type Accumulator struct {
	count int
	sum   float64
	sumSq float64
}

// Summary is an immutable snapshot of an accumulator.
type Summary struct {
	Count  int     `json:"count" yaml:"count" toml:"count"`
	Mean   float64 `json:"mean_seconds" yaml:"mean_seconds" toml:"mean_seconds"`
	StdDev float64 `json:"stddev_seconds" yaml:"stddev_seconds" toml:"stddev_seconds"`
}

// Push adds one sample.
func (a *Accumulator) Push(x float64) {
	a.count++
	a.sum += x
	a.sumSq += x * x
}

// PushDuration adds a duration sample measured in seconds.
func (a *Accumulator) PushDuration(d time.Duration) {
	a.Push(d.Seconds())
}

// Count returns the number of pushed samples.
func (a *Accumulator) Count() int {
	return a.count
}

// Sum returns the sum of all pushed samples.
func (a *Accumulator) Sum() float64 {
	return a.sum
}

// Mean returns the arithmetic mean.
func (a *Accumulator) Mean() float64 {
	return a.sum / float64(a.count)
}

// PopulationStdDev returns the standard deviation over the full sample
// count (not count-1).
func (a *Accumulator) PopulationStdDev() float64 {
	n := float64(a.count)
	v := n*a.sumSq - a.sum*a.sum
	// Rounding can push a zero variance slightly negative.
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v) / n
}

// Summary snapshots count, mean and population standard deviation.
func (a *Accumulator) Summary() Summary {
	return Summary{
		Count:  a.count,
		Mean:   a.Mean(),
		StdDev: a.PopulationStdDev(),
	}
}
