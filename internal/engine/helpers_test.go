package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// top is clamped to the highest value of any range.
const top = 1 << 30

// scriptOracle serves queued values in order and falls back to def. Values are clamped into the
// requested range so a script can say "lowest" with 1 and "highest" with top.
type scriptOracle struct {
	queue []int
	def   int
	calls int
}

func (o *scriptOracle) Rand(min, max int, _ uint64) (int, error) {
	if max <= min {
		return 0, ErrOracleRange
	}
	v := o.def
	if len(o.queue) > 0 {
		v, o.queue = o.queue[0], o.queue[1:]
	}
	o.calls++
	if v < min {
		v = min
	}
	if v >= max {
		v = max - 1
	}
	return v, nil
}

func (o *scriptOracle) push(vals ...int) { o.queue = append(o.queue, vals...) }

var _ Oracle = (*scriptOracle)(nil)

// failingOracle fails every draw while fail is set.
type failingOracle struct {
	inner Oracle
	fail  bool
}

var errBroken = errors.New("oracle offline")

func (o *failingOracle) Rand(min, max int, salt uint64) (int, error) {
	if o.fail {
		return 0, errBroken
	}
	return o.inner.Rand(min, max, salt)
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func newTestGame(t *testing.T, o Oracle) *Game {
	t.Helper()
	g, err := NewWithOracle(SampleTeam("home", 1), SampleTeam("away", 2), []byte(`{"prize":100}`), o)
	require.NoError(t, err)
	return g
}

// midGame puts the game in open play with user 1's skater at pos carrying the puck.
func midGame(g *Game, zone int, pos Position) Slot {
	g.turn = 10
	g.lastAction = Move
	g.zone = zone
	s := g.user1.slotNear(pos)
	g.givePuck(User1, s)
	return s
}
