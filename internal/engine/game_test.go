package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openPlayEvents is the number of random-event draws in a turn where every event misses and no
// penalty cap applies: giveaway, takeaway, puck-out, fight, then big and small penalty, plus the
// net-off check outside the neutral zone.
func openPlayEvents(zone int) int {
	if zone == 2 {
		return 6
	}
	return 7
}

func TestColdStart(t *testing.T) {
	g, err := New(SampleTeam("home", 1), SampleTeam("away", 2), nil, 0)
	require.NoError(t, err)

	ev, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, []ActionType{StartGame, FaceOff, FaceOffWin}, ev.Actions)
	assert.Equal(t, 2, ev.Zone)
	assert.Equal(t, 1, ev.Turn)
	require.NotNil(t, ev.PuckOwner)
	assert.Equal(t, Center, ev.PuckOwner.Position)
}

func TestGoalTransition(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	midGame(g, User1.attackZone(), Center)
	g.user2.GoalieOut = true

	o.push(repeat(top, openPlayEvents(3))...)
	o.push(1) // lowest roll picks the first eligible play: a shot

	ev, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, []ActionType{Shot, Goal}, ev.Actions)
	assert.Equal(t, 1, g.user1.Score)
	assert.Equal(t, 0, g.user2.Score)
	assert.Equal(t, 2, ev.Zone)

	ev, err = g.Step()
	require.NoError(t, err)
	assert.Equal(t, []ActionType{FaceOff, FaceOffWin}, ev.Actions)
	assert.Equal(t, Center, ev.PuckOwner.Position)
}

func TestOffside_DirectMove(t *testing.T) {
	o := &scriptOracle{queue: []int{10}, def: top}
	g := newTestGame(t, o)
	s := midGame(g, 2, Center)

	tags := g.move(User1, s)
	assert.Equal(t, []ActionType{Move, Offside}, tags)
	assert.Equal(t, 2, g.zone)
	assert.Equal(t, 1, o.calls, "offside must short-circuit the defender contest")
	assert.Equal(t, User1, g.puck.Side)
}

func TestOffside_ThroughStep(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	s := midGame(g, 2, Center)

	w := g.actionWeights(User1, s)
	total := w[actDump] + w[actMove] + w[actDangle] + w[actPass]
	r := w[actDump]*100/total + 1
	require.True(t, (w[actDump]+w[actMove])*100 >= r*total, "roll %d must land on move", r)

	o.push(repeat(top, openPlayEvents(2))...)
	o.push(r, 10)

	ev, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, []ActionType{Move, Offside}, ev.Actions)
	assert.Equal(t, 2, ev.Zone)
}

func TestSmallPenalty(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	midGame(g, 2, Center)

	o.push(repeat(top, 5)...) // four events and the big penalty miss
	o.push(1)                 // small penalty fires

	ev, err := g.Step()
	require.NoError(t, err)
	require.True(t, ev.Has(SmallPenalty), "got %v", ev.Actions)

	guilty := User1
	if len(g.user2.Penalties) == 1 {
		guilty = User2
	}
	require.Len(t, g.team(guilty).Penalties, 1)
	offender := g.team(guilty).Penalties[0]
	// Step commits a copy of the turn, so players are looked up again after every call.
	turnsLeft := func() int { return g.team(guilty).player(offender).PenaltyTurns }

	assert.Equal(t, smallPenaltyTurns, turnsLeft())
	assert.Equal(t, PenaltyKill1, g.team(guilty).ActiveLine)
	assert.Equal(t, PowerPlay1, g.team(guilty.Opponent()).ActiveLine)
	assert.Empty(t, g.team(guilty.Opponent()).Penalties)

	left := turnsLeft()
	for i := 1; i <= smallPenaltyTurns; i++ {
		ev, err = g.Step()
		require.NoError(t, err)
		require.Equal(t, left-1, turnsLeft(), "step %d", i)
		left = turnsLeft()
		if i < smallPenaltyTurns {
			assert.False(t, ev.Has(endedPenaltyTag(guilty)), "step %d", i)
			_, onIce := g.team(guilty).onIce(offender)
			assert.False(t, onIce, "penalized player must stay off the ice")
		}
	}
	assert.True(t, ev.Has(endedPenaltyTag(guilty)), "got %v", ev.Actions)
	assert.Empty(t, g.team(guilty).Penalties)
	assert.Zero(t, turnsLeft())
	assert.Equal(t, FirstLine, g.team(guilty).ActiveLine)
	assert.Equal(t, FirstLine, g.team(guilty.Opponent()).ActiveLine)
}

func TestStep_KeepsTeamPointers(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(3))
	home, away := g.user1, g.user2
	for i := 0; i < 30; i++ {
		ev, err := g.Step()
		require.NoError(t, err)
		require.Same(t, home, g.team(User1))
		require.Same(t, away, g.team(User2))
		assert.Equal(t, ev.User1.Team.Score, home.Score)
		assert.Equal(t, ev.User2.Team.ActiveLine, away.ActiveLine)
		assert.NotSame(t, home, ev.User1.Team, "events keep their own copy")
	}

	before := home.Lines[FirstLine].ShiftTimer
	home.Lines[FirstLine].ShiftTimer = before + 1
	assert.Equal(t, before, g.Events()[len(g.Events())-1].User1.Team.Lines[FirstLine].ShiftTimer)
}

func TestIcing_NeverOnPenaltyKill(t *testing.T) {
	t.Run("dump out", func(t *testing.T) {
		o := &scriptOracle{queue: []int{100}, def: 1}
		g := newTestGame(t, o)
		g.user1.setLine(PenaltyKill1)
		s := midGame(g, User1.defensiveZone(), LeftDefense)

		tags := g.dump(User1, s)
		assert.NotContains(t, tags, Icing)
		assert.Equal(t, []ActionType{DumpOut}, tags)
		assert.Equal(t, User1.attackZone(), g.zone)
		assert.Equal(t, Center, g.puck.Position, "penalty kill dumps to C when there is no RW")
	})
	t.Run("dump in", func(t *testing.T) {
		o := &scriptOracle{def: 1}
		g := newTestGame(t, o)
		g.user1.setLine(PenaltyKill1)
		s := midGame(g, 2, LeftDefense)

		tags := g.dump(User1, s)
		assert.Equal(t, []ActionType{DumpIn}, tags)
		assert.Equal(t, User1.attackZone(), g.zone)
	})
	t.Run("even strength ices", func(t *testing.T) {
		o := &scriptOracle{queue: []int{100}, def: 1}
		g := newTestGame(t, o)
		s := midGame(g, User1.defensiveZone(), LeftDefense)

		assert.Equal(t, []ActionType{Icing}, g.dump(User1, s))
		assert.Equal(t, User1, g.offender)
	})
	t.Run("forwards never ice a dump-in", func(t *testing.T) {
		o := &scriptOracle{def: 1}
		g := newTestGame(t, o)
		s := midGame(g, 2, Center)

		assert.Equal(t, []ActionType{DumpIn}, g.dump(User1, s))
		assert.True(t, g.puck.Position.IsWing())
	})
}

func TestIcing_FaceOffInOffendersEnd(t *testing.T) {
	o := &scriptOracle{queue: []int{100}, def: 1}
	g := newTestGame(t, o)
	s := midGame(g, User1.defensiveZone(), LeftDefense)
	g.lastAction = g.dump(User1, s)[0]

	g.zone = 2
	assert.Equal(t, []ActionType{FaceOff, FaceOffWin}, g.faceOff())
	assert.Equal(t, User1.defensiveZone(), g.zone)
}

func TestOvertime(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	midGame(g, 2, Center)
	g.turn = regulation - 1

	ev, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, regulation, ev.Turn)
	assert.True(t, ev.Has(EndOfPeriod))
	assert.True(t, ev.Has(Overtime))
	assert.False(t, ev.Has(GameFinished))
	assert.False(t, g.Finished())

	ev, err = g.Step()
	require.NoError(t, err)
	assert.Equal(t, []ActionType{FaceOff, FaceOffWin}, ev.Actions)
	assert.False(t, g.Finished())

	midGame(g, User1.attackZone(), Center)
	g.turn = regulation + 1
	g.user2.GoalieOut = true
	o.push(repeat(top, openPlayEvents(3))...)
	o.push(1)

	ev, err = g.Step()
	require.NoError(t, err)
	assert.Equal(t, []ActionType{Shot, Goal, GameFinished}, ev.Actions)
	w, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, User1, w)

	_, err = g.Step()
	assert.ErrorIs(t, err, ErrGameFinished)
	assert.ErrorIs(t, err, ErrRuleViolation)
}

func TestPeriodsAndRegulationWin(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	midGame(g, 2, Center)
	g.turn = periodLength - 1

	ev, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, EndOfPeriod, ev.Actions[len(ev.Actions)-1])
	assert.Equal(t, EndOfPeriod, g.lastAction)

	midGame(g, 2, Center)
	g.turn = regulation - 1
	g.user2.Score = 2

	ev, err = g.Step()
	require.NoError(t, err)
	assert.Equal(t, []ActionType{EndOfPeriod, GameFinished}, ev.Actions[len(ev.Actions)-2:])
	w, _ := g.Winner()
	assert.Equal(t, User2, w)
}

func TestStep_OracleFailureLeavesGameUntouched(t *testing.T) {
	o := &failingOracle{inner: NewSeedOracle(9)}
	g := newTestGame(t, o)
	for i := 0; i < 10; i++ {
		_, err := g.Step()
		require.NoError(t, err)
	}
	before, err := json.Marshal(g.Query())
	require.NoError(t, err)

	o.fail = true
	_, err = g.Step()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBroken))
	assert.Equal(t, 10, g.Turn())
	assert.Len(t, g.Events(), 10)
	after, _ := json.Marshal(g.Query())
	assert.JSONEq(t, string(before), string(after))

	o.fail = false
	ev, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, 11, ev.Turn)
}

func TestStep_OutOfRangeOracleValue(t *testing.T) {
	g := newTestGame(t, badOracle{})
	_, err := g.Step()
	require.ErrorIs(t, err, ErrOracleRange)
	assert.Zero(t, g.Turn())
}

type badOracle struct{}

func (badOracle) Rand(_, max int, _ uint64) (int, error) { return max, nil }

func TestShiftChange(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	s := midGame(g, 2, LeftWing)
	l := g.user1.activeLine()
	l.ShiftTimer = l.Priority.shiftLength() - 1
	cost := l.Priority.strengthCost()
	strength := g.user1.player(s.Player).Stats.Strength.Strength

	ev, err := g.Step()
	require.NoError(t, err)
	assert.True(t, ev.Has(FirstTeamChangeActiveFive), "got %v", ev.Actions)
	assert.Equal(t, SecondLine, g.user1.ActiveLine)
	assert.Zero(t, g.user1.activeLine().ShiftTimer)
	assert.Equal(t, strength-cost, g.user1.player(s.Player).Stats.Strength.Strength)
	if g.puck.Side == User1 {
		_, ok := g.user1.onIce(g.puck.Player)
		assert.True(t, ok)
	}
}

func TestLineRotation(t *testing.T) {
	assert.Equal(t, SecondLine, FirstLine.next())
	assert.Equal(t, FirstLine, FourthLine.next())
	assert.Equal(t, PowerPlay2, PowerPlay1.next())
	assert.Equal(t, PowerPlay1, PowerPlay2.next())
	assert.Equal(t, PenaltyKill1, PenaltyKill2.next())
}

func TestFight_MoraleClamped(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	s := midGame(g, 2, Center)
	for _, p := range g.user1.Players {
		p.Morale = 0
	}
	for _, p := range g.user2.Players {
		p.Morale = 0
	}

	assert.Equal(t, []ActionType{Fight}, g.fight(User1, s))
	for _, team := range []*Team{g.user1, g.user2} {
		for _, p := range team.Players {
			assert.GreaterOrEqual(t, p.Morale, 0.0)
		}
		for _, gk := range team.Goalies {
			assert.GreaterOrEqual(t, gk.Morale, 0.0)
		}
	}
}

func TestSelectAction_Eligibility(t *testing.T) {
	for r := 1; r <= 100; r++ {
		o := &scriptOracle{queue: []int{r}}
		g := newTestGame(t, o)
		s := midGame(g, User1.attackZone(), Center)
		a := g.selectAction(User1, s)
		if a != actShot && a != actPass {
			t.Fatalf("r=%d: %v chosen in the attack zone", r, a)
		}

		o.push(r)
		g.zone = 2
		if a := g.selectAction(User1, s); a == actShot {
			t.Fatalf("r=%d: shot chosen outside the attack zone", r)
		}
	}
}

func TestSelectAction_Modifiers(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(1))
	s := g.user1.slotNear(Center)
	base := roleWeights[g.user1.player(s.Player).Role]

	g.user1.setLine(PowerPlay1)
	s = g.user1.slotNear(Center)
	g.user1.activeLine().Tactic = Neutral
	w := g.actionWeights(User1, s)
	role := roleWeights[g.user1.player(s.Player).Role]
	assert.Equal(t, role[actDump]+3, w[actDump])
	assert.Equal(t, role[actShot]+2, w[actShot])

	g.user1.setLine(FirstLine)
	g.user1.activeLine().Tactic = Aggressive
	w = g.actionWeights(User1, g.user1.slotNear(Center))
	assert.Equal(t, base[actMove]+2, w[actMove])
	assert.Equal(t, base[actPass], w[actPass])
}

func TestPass_StaysWithinTeam(t *testing.T) {
	o := &scriptOracle{queue: []int{100}, def: top}
	g := newTestGame(t, o)
	rd := g.user2.Players["away-RD1"]
	rd.Stats.IQ = IQ{}
	rd.Morale = 0
	rd.Stats.Strength.Strength = 0
	s := midGame(g, 2, LeftWing)

	tags := g.pass(User1, s)
	require.Equal(t, []ActionType{Pass}, tags)
	assert.Equal(t, User1, g.puck.Side)
	assert.NotEqual(t, s.Position, g.puck.Position)
}

func TestShot_SaveAndRebound(t *testing.T) {
	o := &scriptOracle{queue: []int{top, 1}, def: top}
	g := newTestGame(t, o)
	s := midGame(g, User1.attackZone(), Center)
	g.user1.Players[s.Player].Stats.Shooting = Shooting{}
	g.user1.Players[s.Player].Morale = 0
	g.user1.Players[s.Player].Stats.Strength.Strength = 0

	assert.Equal(t, []ActionType{Shot, Rebound}, g.shoot(User1, s))
	assert.Equal(t, s.Player, g.puck.Player)

	o.push(top, top)
	assert.Equal(t, []ActionType{Shot, Save}, g.shoot(User1, s))
	assert.Zero(t, g.user1.Score)
}

func TestEventsAreSnapshots(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(4))
	ev, err := g.Step()
	require.NoError(t, err)
	g.user1.Score = 99
	g.user1.Players["home-C1"].Morale = 0
	assert.Zero(t, ev.User1.Team.Score)
	assert.NotZero(t, ev.User1.Team.Players["home-C1"].Morale)
	assert.Len(t, ev.User1.OnIce, 5)
}

func TestReward_Opaque(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(4))
	assert.JSONEq(t, `{"prize":100}`, string(g.Reward()))
}
