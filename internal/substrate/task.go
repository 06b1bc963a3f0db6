package substrate

import (
	"github.com/GriffinCanCode/brigade/internal/link"
	"golang.org/x/sync/errgroup"
)

// Task runs every unit as a plain goroutine on the runtime's worker pool.
// The pool size is GOMAXPROCS.
type Task struct{}

func (Task) Kind() Kind { return KindTask }

func (Task) DefaultLink() link.Kind { return link.KindSocket }

func (t Task) Launch(g *errgroup.Group, units []*Unit) {
	launch(g, units, t.Go)
}

func (Task) Pump([]*Unit) error { return nil }

func (Task) Go(g *errgroup.Group, fn func() error) {
	g.Go(fn)
}
