// Package engine is a deterministic, turn-based ice-hockey match simulator.
//
// A Game is built from two team descriptors and a seed. Every call to Step advances the game by
// one turn and returns the Event describing it. The engine performs no I/O and never reads the
// clock: all randomness comes from the Oracle, so two games built from the same rosters and seed
// produce identical event logs.
//
// A Game is not safe for concurrent use; callers serialise Step and the coach commands.
package engine

import (
	"encoding/json"
	"fmt"
)

const (
	periodLength = 25
	regulation   = 3 * periodLength
)

// PuckOwner is a weak reference to the skater carrying the puck.
type PuckOwner struct {
	Side     Side     `json:"side"`
	Player   PlayerID `json:"player"`
	Position Position `json:"position"`
}

type Game struct {
	oracle Oracle
	user1  *Team
	user2  *Team
	reward json.RawMessage

	winner     *Side
	puck       *PuckOwner
	zone       int
	turn       int
	lastAction ActionType
	// offender is the side responsible for the last icing or penalty.
	offender Side
	pending  []ActionType
	log      []Event

	draw  int
	fault error
}

// New validates both rosters and builds a game driven by a SeedOracle.
func New(home, away TeamDescriptor, reward json.RawMessage, seed uint64) (*Game, error) {
	return NewWithOracle(home, away, reward, NewSeedOracle(seed))
}

// NewWithOracle builds a game with a caller supplied oracle.
func NewWithOracle(home, away TeamDescriptor, reward json.RawMessage, oracle Oracle) (*Game, error) {
	if oracle == nil {
		return nil, fmt.Errorf("%w: oracle is required", ErrStructural)
	}
	u1, err := buildTeam(User1, home)
	if err != nil {
		return nil, err
	}
	u2, err := buildTeam(User2, away)
	if err != nil {
		return nil, err
	}
	return &Game{
		oracle: oracle,
		user1:  u1,
		user2:  u2,
		reward: append(json.RawMessage(nil), reward...),
		zone:   2,
	}, nil
}

func (g *Game) team(s Side) *Team {
	if s == User1 {
		return g.user1
	}
	return g.user2
}

func (g *Game) Turn() int { return g.turn }
func (g *Game) Reward() json.RawMessage { return append(json.RawMessage(nil), g.reward...) }
func (g *Game) Finished() bool { return g.winner != nil }
func (g *Game) Events() []Event { return append([]Event(nil), g.log...) }
func (g *Game) LastAction() ActionType { return g.lastAction }
func (g *Game) Winner() (Side, bool) {
	if g.winner == nil {
		return 0, false
	}
	return *g.winner, true
}

// Step plays one turn. The turn runs on a copy of the game and is committed only if the oracle
// served every draw, so a failed Step leaves the game untouched.
//
// The committed teams are copied into the existing *Team values, so team pointers stay valid
// across a Step. Lines, players and goalies inside a team are replaced by the turn's copies;
// pointers to those must be looked up again through the team.
func (g *Game) Step() (Event, error) {
	if g.winner != nil {
		return Event{}, ErrGameFinished
	}
	next := g.clone()
	ev := next.advance()
	if next.fault != nil {
		return Event{}, fmt.Errorf("turn %d: %w", next.turn, next.fault)
	}
	next.fault = nil
	u1, u2 := g.user1, g.user2
	*u1, *u2 = *next.user1, *next.user2
	next.user1, next.user2 = u1, u2
	*g = *next
	g.log = append(g.log, ev)
	return ev, nil
}

// rand draws from the oracle with a salt unique to this turn and draw. After a failure every
// further draw returns min and the turn is discarded by Step.
func (g *Game) rand(min, max int) int {
	if g.fault != nil {
		return min
	}
	salt := drawSalt(g.turn, g.draw)
	g.draw++
	v, err := g.oracle.Rand(min, max, salt)
	if err != nil {
		g.fault = err
		return min
	}
	if v < min || v >= max {
		g.fault = fmt.Errorf("%w: %d outside [%d, %d)", ErrOracleRange, v, min, max)
		return min
	}
	return v
}

func (g *Game) advance() Event {
	g.turn++
	g.draw = 0

	var actions []ActionType
	if g.turn == 1 {
		actions = append(actions, StartGame)
		g.lastAction = StartGame
	}
	actions = append(actions, g.pending...)
	g.pending = nil

	var played []ActionType
	if isFaceOffTrigger(g.lastAction) {
		played = g.faceOff()
	} else {
		played = g.doAction()
	}
	if len(played) > 0 {
		g.lastAction = played[len(played)-1]
	}
	actions = append(actions, played...)

	actions = append(actions, g.changeShifts()...)
	actions = append(actions, g.tickPenalties()...)

	if g.turn%periodLength == 0 && g.turn <= regulation {
		actions = append(actions, EndOfPeriod)
		g.lastAction = EndOfPeriod
	}
	if g.turn >= regulation {
		switch {
		case g.user1.Score > g.user2.Score:
			g.finish(User1)
			actions = append(actions, GameFinished)
		case g.user2.Score > g.user1.Score:
			g.finish(User2)
			actions = append(actions, GameFinished)
		case g.turn == regulation:
			actions = append(actions, Overtime)
		}
	}

	g.ensurePuck()
	return g.snapshot(actions)
}

func (g *Game) finish(s Side) {
	w := s
	g.winner = &w
}

// givePuck hands the puck to the skater at slot s of side.
func (g *Game) givePuck(side Side, s Slot) {
	g.puck = &PuckOwner{Side: side, Player: s.Player, Position: s.Position}
}

// carrier resolves the puck owner to its current slot.
func (g *Game) carrier() (Side, Slot) {
	t := g.team(g.puck.Side)
	if s, ok := t.onIce(g.puck.Player); ok {
		return g.puck.Side, s
	}
	return g.puck.Side, t.slotNear(g.puck.Position)
}

// ensurePuck keeps the puck on an eligible skater after line changes and penalties.
func (g *Game) ensurePuck() {
	if g.puck == nil {
		return
	}
	side, s := g.carrier()
	g.givePuck(side, s)
}

// advanceZone moves the play one zone toward the side's attack end.
func (g *Game) advanceZone(side Side) {
	if side == User1 && g.zone < 3 {
		g.zone++
	}
	if side == User2 && g.zone > 1 {
		g.zone--
	}
}

func (g *Game) clone() *Game {
	c := *g
	c.user1 = g.user1.clone()
	c.user2 = g.user2.clone()
	if g.puck != nil {
		p := *g.puck
		c.puck = &p
	}
	if g.winner != nil {
		w := *g.winner
		c.winner = &w
	}
	c.pending = append([]ActionType(nil), g.pending...)
	c.log = g.log[:len(g.log):len(g.log)]
	return &c
}
