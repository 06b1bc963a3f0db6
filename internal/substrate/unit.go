package substrate

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/brigade/internal/link"
)

// Transform is applied by every unit to each payload it forwards.
type Transform string

const (
	Identity  Transform = "identity"
	Increment Transform = "increment"
)

// ParseTransform converts a name to a Transform.
func ParseTransform(s string) (Transform, error) {
	switch Transform(s) {
	case Identity, Increment:
		return Transform(s), nil
	default:
		return "", fmt.Errorf("unknown transform %q", s)
	}
}

// Apply transforms one payload.
func (t Transform) Apply(v uint64) uint64 {
	if t == Increment {
		return v + 1
	}
	return v
}

// Unit is a forwarding unit bound to one upstream and one downstream link.
type Unit struct {
	Index     int
	In        link.Receiver
	Out       link.Sender
	Transform Transform
}

// Step forwards exactly one payload.
func (u *Unit) Step() error {
	v, err := u.In.Recv()
	if err != nil {
		return err
	}
	return u.Out.Send(u.Transform.Apply(v))
}

// Forward calls ready, then forwards payloads until a link fails.
//
// On any failure both ends are closed so the close reaches the driver
// through the rest of the chain. A closed upstream is the normal way
// a unit stops and yields a nil error.
func (u *Unit) Forward(ready func()) error {
	if ready != nil {
		ready()
	}
	for {
		if err := u.Step(); err != nil {
			u.Out.Close()
			u.In.Close()
			if errors.Is(err, link.ErrClosed) {
				return nil
			}
			return fmt.Errorf("unit %d: %w", u.Index, err)
		}
	}
}
