package substrate

import (
	"github.com/GriffinCanCode/brigade/internal/link"
	"golang.org/x/sync/errgroup"
)

// Inline runs units on the caller's goroutine, one step each per Pump.
type Inline struct{}

func (Inline) Kind() Kind { return KindInline }

func (Inline) DefaultLink() link.Kind { return link.KindFD }

// Launch does nothing; units only run inside Pump.
func (Inline) Launch(*errgroup.Group, []*Unit) {}

func (Inline) Pump(units []*Unit) error {
	for _, u := range units {
		if err := u.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Go runs fn to completion before returning. A failure is handed to g so
// that g.Wait reports it like any other unit's.
func (Inline) Go(g *errgroup.Group, fn func() error) {
	if err := fn(); err != nil {
		g.Go(func() error { return err })
	}
}
