package link

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Recv after the peer Sender was closed, and by
// Send when the peer Receiver is gone.
var ErrClosed = errors.New("link closed")

// Kind selects the primitive backing a link.
type Kind string

const (
	KindChan   Kind = "chan"
	KindSocket Kind = "socket"
	KindFD     Kind = "fd"
)

// Kinds lists every supported link kind.
var Kinds = []Kind{KindChan, KindSocket, KindFD}

// ParseKind converts a name to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown link kind %q", s)
}

// Lossless reports whether the link carries a full uint64 payload.
func (k Kind) Lossless() bool {
	return k == KindChan
}

// Sender is the write end of a link.
type Sender interface {
	// Send blocks while a chan link already holds a payload. Socket and
	// fd links carry one byte and the kernel buffers more than that, so
	// a second Send returns at once; callers keep one payload in flight.
	Send(v uint64) error
	Close() error
}

// Receiver is the read end of a link.
type Receiver interface {
	// Recv blocks while the link is empty.
	Recv() (uint64, error)
	Close() error
}

// New allocates a link of the given kind.
func New(kind Kind) (Sender, Receiver, error) {
	switch kind {
	case KindChan:
		s, r := newChan()
		return s, r, nil
	case KindSocket:
		return newSocket()
	case KindFD:
		return newFD()
	default:
		return nil, nil, fmt.Errorf("unknown link kind %q", kind)
	}
}
