package chain

import (
	"fmt"
	"testing"

	"github.com/GriffinCanCode/brigade/internal/link"
	"github.com/GriffinCanCode/brigade/internal/substrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var substrates = []substrate.Substrate{
	substrate.Thread{},
	substrate.Task{},
	substrate.Inline{},
}

func TestBuildRejectsNegativeUnits(t *testing.T) {
	_, err := Build(substrate.Task{}, Options{Units: -1})
	assert.Error(t, err)
}

func TestBuildRejectsLossyIncrement(t *testing.T) {
	for _, kind := range []link.Kind{link.KindSocket, link.KindFD} {
		_, err := Build(substrate.Task{}, Options{Units: 3, Link: kind, Transform: substrate.Increment})
		assert.ErrorIs(t, err, ErrLossyLink)
	}
}

func TestBuildDefaults(t *testing.T) {
	for _, s := range substrates {
		t.Run(string(s.Kind()), func(t *testing.T) {
			c, err := Build(s, Options{Units: 2})
			require.NoError(t, err)
			defer c.Close()

			assert.Equal(t, s.DefaultLink(), c.Link())
			assert.Equal(t, substrate.Identity, c.Transform())
			assert.Equal(t, 2, c.Units())
			assert.Equal(t, s.Kind(), c.Substrate().Kind())
		})
	}
}

func TestRelayIdentity(t *testing.T) {
	for _, s := range substrates {
		for _, kind := range link.Kinds {
			for _, n := range []int{0, 1, 7, 64} {
				name := fmt.Sprintf("%s/%s/%d", s.Kind(), kind, n)
				t.Run(name, func(t *testing.T) {
					c, err := Build(s, Options{Units: n, Link: kind})
					require.NoError(t, err)

					got, err := c.Relay(0x2A)
					require.NoError(t, err)
					assert.Equal(t, uint64(0x2A), got)
					assert.Equal(t, c.Expect(0x2A), got)

					assert.NoError(t, c.Close())
				})
			}
		}
	}
}

func TestRelayIncrement(t *testing.T) {
	for _, s := range substrates {
		for _, n := range []int{0, 1, 3, 100} {
			name := fmt.Sprintf("%s/%d", s.Kind(), n)
			t.Run(name, func(t *testing.T) {
				c, err := Build(s, Options{Units: n, Link: link.KindChan, Transform: substrate.Increment})
				require.NoError(t, err)
				defer c.Close()

				got, err := c.Relay(0)
				require.NoError(t, err)
				assert.Equal(t, uint64(n), got)
				assert.Equal(t, c.Expect(0), got)
			})
		}
	}
}

func TestRelayManyWithoutDeadlock(t *testing.T) {
	for _, s := range substrates {
		t.Run(string(s.Kind()), func(t *testing.T) {
			c, err := Build(s, Options{Units: 50})
			require.NoError(t, err)
			defer c.Close()

			for i := 0; i < 500; i++ {
				got, err := c.Relay(uint64(i))
				require.NoError(t, err)
				require.Equal(t, c.Expect(uint64(i)), got)
			}
		})
	}
}

func TestExpect(t *testing.T) {
	tests := []struct {
		name      string
		units     int
		kind      link.Kind
		transform substrate.Transform
		in        uint64
		want      uint64
	}{
		{name: "identity chan", units: 5, kind: link.KindChan, transform: substrate.Identity, in: 300, want: 300},
		{name: "identity byte", units: 5, kind: link.KindFD, transform: substrate.Identity, in: 300, want: 44},
		{name: "increment chan", units: 500, kind: link.KindChan, transform: substrate.Increment, in: 0, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build(substrate.Inline{}, Options{Units: tt.units, Link: tt.kind, Transform: tt.transform})
			require.NoError(t, err)
			defer c.Close()

			assert.Equal(t, tt.want, c.Expect(tt.in))
		})
	}
}

func TestCloseStopsEveryUnit(t *testing.T) {
	for _, s := range substrates {
		t.Run(string(s.Kind()), func(t *testing.T) {
			c, err := Build(s, Options{Units: 10})
			require.NoError(t, err)

			_, err = c.Relay(1)
			require.NoError(t, err)

			assert.NoError(t, c.Close())
		})
	}
}
