package bench

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrProtocolViolation reports a payload that differs from what a correct
// chain delivers: a dropped, duplicated or corrupted payload.
var ErrProtocolViolation = errors.New("protocol violation")

// Phase is a relay driver state.
type Phase int

const (
	PhaseBuilding Phase = iota
	PhaseWarmup
	PhaseMeasuring
	PhaseDone
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseBuilding:
		return "building"
	case PhaseWarmup:
		return "warmup"
	case PhaseMeasuring:
		return "measuring"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Observer receives samples as they are recorded. Calls happen outside
// timed windows.
type Observer interface {
	Phase(p Phase)
	Iteration(elapsed time.Duration)
	Batch(creation time.Duration)
	Start(latency time.Duration)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) Phase(Phase)             {}
func (NopObserver) Iteration(time.Duration) {}
func (NopObserver) Batch(time.Duration)     {}
func (NopObserver) Start(time.Duration)     {}

// progressInterval bounds how often measuring progress is logged.
const progressInterval = time.Second

func newProgress() *rate.Sometimes {
	return &rate.Sometimes{Interval: progressInterval}
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return NopObserver{}
	}
	return o
}
