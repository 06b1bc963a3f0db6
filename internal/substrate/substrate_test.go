package substrate

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/GriffinCanCode/brigade/internal/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// wire builds n units over fresh links and returns them with the chain's
// entry sender and exit receiver.
func wire(t *testing.T, kind link.Kind, n int, tr Transform) ([]*Unit, link.Sender, link.Receiver) {
	t.Helper()

	entry, in, err := link.New(kind)
	require.NoError(t, err)

	units := make([]*Unit, n)
	for i := range units {
		s, r, err := link.New(kind)
		require.NoError(t, err)
		units[i] = &Unit{Index: i, In: in, Out: s, Transform: tr}
		in = r
	}
	return units, entry, in
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)

		s, err := New(k)
		require.NoError(t, err)
		assert.Equal(t, k, s.Kind())
	}

	_, err := ParseKind("fiber")
	assert.Error(t, err)
	_, err = New("fiber")
	assert.Error(t, err)
}

func TestDefaultLinks(t *testing.T) {
	assert.Equal(t, link.KindFD, Thread{}.DefaultLink())
	assert.Equal(t, link.KindSocket, Task{}.DefaultLink())
	assert.Equal(t, link.KindFD, Inline{}.DefaultLink())
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
		in   uint64
		want uint64
	}{
		{name: "identity", tr: Identity, in: 0x2A, want: 0x2A},
		{name: "increment", tr: Increment, in: 0, want: 1},
		{name: "increment large", tr: Increment, in: 499, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tr.Apply(tt.in))
		})
	}

	_, err := ParseTransform("double")
	assert.Error(t, err)
	tr, err := ParseTransform("increment")
	require.NoError(t, err)
	assert.Equal(t, Increment, tr)
}

func TestUnitStep(t *testing.T) {
	units, entry, exit := wire(t, link.KindChan, 1, Increment)

	require.NoError(t, entry.Send(41))
	require.NoError(t, units[0].Step())

	got, err := exit.Recv()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got)
}

func TestForwardStopsOnUpstreamClose(t *testing.T) {
	units, entry, exit := wire(t, link.KindChan, 1, Identity)

	var entered atomic.Bool
	done := make(chan error, 1)
	go func() { done <- units[0].Forward(func() { entered.Store(true) }) }()

	require.NoError(t, entry.Send(9))
	got, err := exit.Recv()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), got)
	assert.True(t, entered.Load())

	require.NoError(t, entry.Close())
	assert.NoError(t, <-done)

	_, err = exit.Recv()
	assert.ErrorIs(t, err, link.ErrClosed)
}

func TestSubstratesRelay(t *testing.T) {
	tests := []struct {
		sub  Substrate
		kind link.Kind
	}{
		{sub: Thread{}, kind: link.KindFD},
		{sub: Thread{}, kind: link.KindChan},
		{sub: Task{}, kind: link.KindSocket},
		{sub: Task{}, kind: link.KindChan},
		{sub: Inline{}, kind: link.KindFD},
		{sub: Inline{}, kind: link.KindChan},
	}

	for _, tt := range tests {
		t.Run(string(tt.sub.Kind())+"/"+string(tt.kind), func(t *testing.T) {
			units, entry, exit := wire(t, tt.kind, 5, Increment)

			var g errgroup.Group
			tt.sub.Launch(&g, units)

			for i := uint64(0); i < 3; i++ {
				require.NoError(t, entry.Send(i*10))
				require.NoError(t, tt.sub.Pump(units))
				got, err := exit.Recv()
				require.NoError(t, err)
				assert.Equal(t, i*10+5, got)
			}

			require.NoError(t, entry.Close())
			assert.NoError(t, g.Wait())
			exit.Close()
		})
	}
}

func TestGoRunsToCompletion(t *testing.T) {
	for _, sub := range []Substrate{Thread{}, Task{}, Inline{}} {
		t.Run(string(sub.Kind()), func(t *testing.T) {
			var g errgroup.Group
			var ran atomic.Int32
			for i := 0; i < 10; i++ {
				sub.Go(&g, func() error {
					ran.Add(1)
					return nil
				})
			}
			require.NoError(t, g.Wait())
			assert.Equal(t, int32(10), ran.Load())
		})
	}
}

func TestGoReportsFailure(t *testing.T) {
	boom := errors.New("boom")
	for _, sub := range []Substrate{Thread{}, Task{}, Inline{}} {
		t.Run(string(sub.Kind()), func(t *testing.T) {
			var g errgroup.Group
			sub.Go(&g, func() error { return boom })
			assert.ErrorIs(t, g.Wait(), boom)
		})
	}
}

func TestInlineGoIsSynchronous(t *testing.T) {
	var g errgroup.Group
	ran := false
	Inline{}.Go(&g, func() error {
		ran = true
		return nil
	})
	assert.True(t, ran)
	require.NoError(t, g.Wait())
}

func TestThreadGoReturnsBeforeBody(t *testing.T) {
	var g errgroup.Group
	release := make(chan struct{})
	var finished atomic.Bool

	Thread{}.Go(&g, func() error {
		<-release
		finished.Store(true)
		return nil
	})

	// Admission does not wait for the body, so thread locking is never
	// part of the caller's creation span.
	assert.False(t, finished.Load())
	close(release)
	require.NoError(t, g.Wait())
	assert.True(t, finished.Load())
}
