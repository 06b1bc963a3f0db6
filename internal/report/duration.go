package report

import "fmt"

// Duration formats a number of seconds for display.
type Duration float64

// String renders d with unit-appropriate precision.
func (d Duration) String() string {
	s := float64(d)
	switch {
	case s == 0:
		return "0s"
	case s < 1.5e-6:
		return fmt.Sprintf("%.3fns", s*1e9)
	case s < 1.5e-3:
		return fmt.Sprintf("%.3fµs", s*1e6)
	case s < 1.5:
		return fmt.Sprintf("%.3fms", s*1e3)
	default:
		return fmt.Sprintf("%.3fs", s)
	}
}
