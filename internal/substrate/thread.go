package substrate

import (
	"runtime"

	"github.com/GriffinCanCode/brigade/internal/link"
	"golang.org/x/sync/errgroup"
)

// Thread gives every unit a dedicated OS thread.
//
// Units lock their goroutine to the current thread and never unlock it, so
// the runtime destroys that thread when the unit returns instead of reusing
// it for other goroutines.
//
// Go returns as soon as the goroutine is admitted; the lock happens in the
// unit's body. A spawn batch's creation span therefore covers goroutine
// creation, while thread creation or reuse lands in the start latency.
type Thread struct{}

func (Thread) Kind() Kind { return KindThread }

func (Thread) DefaultLink() link.Kind { return link.KindFD }

func (t Thread) Launch(g *errgroup.Group, units []*Unit) {
	launch(g, units, t.Go)
}

func (Thread) Pump([]*Unit) error { return nil }

func (Thread) Go(g *errgroup.Group, fn func() error) {
	g.Go(func() error {
		runtime.LockOSThread()
		return fn()
	})
}
