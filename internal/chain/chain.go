// Package chain builds a linear chain of forwarding units.
//
// A chain of N units owns N+1 links. Unit i reads link i and writes link
// i+1; the caller keeps the write end of link 0 and the read end of link N.
// Exactly one payload may be in flight at a time: Relay injects one and
// blocks until it comes out the other end.
package chain

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/brigade/internal/link"
	"github.com/GriffinCanCode/brigade/internal/substrate"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrResourceExhausted wraps a failure to allocate a link.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrLossyLink is returned when an increment transform is paired with
	// a link that cannot carry the resulting counts.
	ErrLossyLink = errors.New("transform needs a lossless link")
)

// Options configures Build.
type Options struct {
	// Units is the number of forwarding units (N >= 0).
	Units int
	// Link selects the link kind. Empty means the substrate default.
	Link link.Kind
	// Transform applied by every unit. Empty means Identity.
	Transform substrate.Transform
}

// Chain is a running chain of forwarding units.
type Chain struct {
	sub       substrate.Substrate
	kind      link.Kind
	transform substrate.Transform
	units     []*substrate.Unit
	entry     link.Sender
	exit      link.Receiver
	group     errgroup.Group
}

// Build allocates all links, wires the units and starts them on s.
// It returns once every unit is scheduled.
func Build(s substrate.Substrate, opts Options) (*Chain, error) {
	if opts.Units < 0 {
		return nil, fmt.Errorf("unit count must be non-negative, got %d", opts.Units)
	}
	if opts.Link == "" {
		opts.Link = s.DefaultLink()
	}
	if opts.Transform == "" {
		opts.Transform = substrate.Identity
	}
	if opts.Transform == substrate.Increment && !opts.Link.Lossless() {
		return nil, fmt.Errorf("%w: %s over %s", ErrLossyLink, opts.Transform, opts.Link)
	}

	c := &Chain{
		sub:       s,
		kind:      opts.Link,
		transform: opts.Transform,
		units:     make([]*substrate.Unit, 0, opts.Units),
	}

	entry, in, err := link.New(opts.Link)
	if err != nil {
		return nil, fmt.Errorf("%w: link 0: %w", ErrResourceExhausted, err)
	}
	c.entry = entry

	for i := 0; i < opts.Units; i++ {
		out, next, err := link.New(opts.Link)
		if err != nil {
			in.Close()
			c.release()
			return nil, fmt.Errorf("%w: link %d: %w", ErrResourceExhausted, i+1, err)
		}
		c.units = append(c.units, &substrate.Unit{
			Index:     i,
			In:        in,
			Out:       out,
			Transform: opts.Transform,
		})
		in = next
	}
	c.exit = in

	s.Launch(&c.group, c.units)
	return c, nil
}

// Relay injects v at the entry and returns the payload that leaves the exit.
func (c *Chain) Relay(v uint64) (uint64, error) {
	if err := c.entry.Send(v); err != nil {
		return 0, fmt.Errorf("inject payload: %w", err)
	}
	if err := c.sub.Pump(c.units); err != nil {
		return 0, fmt.Errorf("pump chain: %w", err)
	}
	got, err := c.exit.Recv()
	if err != nil {
		return 0, fmt.Errorf("drain payload: %w", err)
	}
	return got, nil
}

// Expect returns the value a correct chain delivers for entry value v.
func (c *Chain) Expect(v uint64) uint64 {
	if c.transform == substrate.Increment {
		v += uint64(len(c.units))
	}
	if !c.kind.Lossless() {
		v &= 0xFF
	}
	return v
}

// Units returns the number of forwarding units.
func (c *Chain) Units() int { return len(c.units) }

// Link returns the link kind in use.
func (c *Chain) Link() link.Kind { return c.kind }

// Transform returns the per-unit transform.
func (c *Chain) Transform() substrate.Transform { return c.transform }

// Substrate returns the substrate running the units.
func (c *Chain) Substrate() substrate.Substrate { return c.sub }

// Close shuts the chain down by closing the entry link and waiting for the
// close to travel through every unit. It returns the first unit failure.
//
// Close must not be called while a Relay is in progress. Benchmarks
// normally never call it and let process exit reclaim the units.
func (c *Chain) Close() error {
	c.entry.Close()
	err := c.group.Wait()
	c.release()
	return err
}

// release closes every link end still held by the chain.
func (c *Chain) release() {
	if c.entry != nil {
		c.entry.Close()
	}
	for _, u := range c.units {
		u.In.Close()
		u.Out.Close()
	}
	if c.exit != nil {
		c.exit.Close()
	}
}
