package substrate

import (
	"fmt"
	"sync"

	"github.com/GriffinCanCode/brigade/internal/link"
	"golang.org/x/sync/errgroup"
)

// Kind names a substrate.
type Kind string

const (
	KindThread Kind = "thread"
	KindTask   Kind = "task"
	KindInline Kind = "inline"
)

// Kinds lists every supported substrate.
var Kinds = []Kind{KindThread, KindTask, KindInline}

// ParseKind converts a name to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown substrate %q", s)
}

// Substrate schedules execution units.
type Substrate interface {
	Kind() Kind

	// DefaultLink is the link kind that exercises this substrate's
	// natural blocking mechanism.
	DefaultLink() link.Kind

	// Launch starts a forwarding loop for every unit in g and returns once
	// all of them are running. Loops never return on their own.
	Launch(g *errgroup.Group, units []*Unit)

	// Pump drives one payload from units[0].In to units[len-1].Out.
	// Substrates with independent scheduling return immediately.
	Pump(units []*Unit) error

	// Go admits fn as a new execution unit tracked by g.
	Go(g *errgroup.Group, fn func() error)
}

// New returns the substrate for kind.
func New(kind Kind) (Substrate, error) {
	switch kind {
	case KindThread:
		return Thread{}, nil
	case KindTask:
		return Task{}, nil
	case KindInline:
		return Inline{}, nil
	default:
		return nil, fmt.Errorf("unknown substrate %q", kind)
	}
}

// launch runs every unit's Forward through spawn and waits until each
// loop has entered.
func launch(g *errgroup.Group, units []*Unit, spawn func(*errgroup.Group, func() error)) {
	var ready sync.WaitGroup
	ready.Add(len(units))
	for _, u := range units {
		spawn(g, func() error { return u.Forward(ready.Done) })
	}
	ready.Wait()
}
