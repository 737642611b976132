package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contestRoll is the hasWon draw that decides a contest between ratings a and b for a (win) or
// for b.
func contestRoll(a, b float64, win bool) int {
	if (a > b) == win {
		return top
	}
	return 1
}

// duelRoll computes the draw that settles a duel between the skater at s and the positional
// opponent the way duel rates them.
func duelRoll(g *Game, side Side, s Slot, attack, defend func(*FieldPlayer) float64, win bool) int {
	own, other := g.team(side), g.team(side.Opponent())
	opp, coef := g.opponentOf(side, s.Position)
	a := own.relative(s, attack(own.player(s.Player)))
	b := other.relative(opp, defend(other.player(opp.Player))) * coef
	return contestRoll(a, b, win)
}

func TestTurnover(t *testing.T) {
	cases := []struct {
		name   string
		lead   []int // draws before the event fires
		tag    ActionType
		battle bool
		win    bool
		want   Side
	}{
		{"giveaway hands over", nil, Giveaway, false, false, User2},
		{"giveaway battle won", nil, Giveaway, true, true, User1},
		{"takeaway hands over", []int{top}, Takeaway, false, false, User2},
		{"takeaway battle lost", []int{top}, Takeaway, true, false, User2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &scriptOracle{def: top}
			g := newTestGame(t, o)
			s := midGame(g, 2, Center)

			o.push(tc.lead...)
			o.push(1) // the event fires
			want := []ActionType{tc.tag}
			if tc.battle {
				o.push(1, duelRoll(g, User1, s, openIceSkill, openIceSkill, tc.win))
				want = append(want, Battle)
			} else {
				o.push(top)
			}

			tags, ok := g.randomEvent(User1, s)
			require.True(t, ok)
			assert.Equal(t, want, tags)
			assert.Equal(t, tc.want, g.puck.Side)
			if tc.want == User2 {
				opp, _ := g.opponentOf(User1, s.Position)
				assert.Equal(t, opp.Player, g.puck.Player, "the positional opponent takes the puck")
			} else {
				assert.Equal(t, s.Player, g.puck.Player)
			}
		})
	}
}

func TestStoppages_FaceOffSpot(t *testing.T) {
	t.Run("puck out in the attack zone", func(t *testing.T) {
		o := &scriptOracle{def: top}
		g := newTestGame(t, o)
		s := midGame(g, 3, Center)

		o.push(top, top, 1)
		tags, ok := g.randomEvent(User1, s)
		require.True(t, ok)
		require.Equal(t, []ActionType{PuckOut}, tags)
		g.lastAction = PuckOut

		o.push(1) // second spot of {LW, RW}
		o.push(duelRoll(g, User1, g.user1.slotNear(RightWing), faceOffSkill, faceOffSkill, true))
		assert.Equal(t, []ActionType{FaceOff, FaceOffWin}, g.faceOff())
		assert.Equal(t, 3, g.zone)
		assert.Equal(t, User1, g.puck.Side)
		assert.Equal(t, RightWing, g.puck.Position)
	})

	t.Run("net off in the defensive zone", func(t *testing.T) {
		o := &scriptOracle{def: top}
		g := newTestGame(t, o)
		s := midGame(g, 1, Center)

		o.push(top, top, top, top, 1)
		tags, _ := g.randomEvent(User1, s)
		require.Equal(t, []ActionType{NetOff}, tags)
		g.lastAction = NetOff

		o.push(0) // first spot of {LD, RD}
		o.push(duelRoll(g, User1, g.user1.slotNear(LeftDefense), faceOffSkill, faceOffSkill, false))
		g.faceOff()
		assert.Equal(t, 1, g.zone)
		assert.Equal(t, User2, g.puck.Side)
		opp, _ := g.opponentOf(User1, LeftDefense)
		assert.Equal(t, opp.Player, g.puck.Player)
	})

	t.Run("fight in the neutral zone", func(t *testing.T) {
		o := &scriptOracle{def: top}
		g := newTestGame(t, o)
		s := midGame(g, 2, Center)

		o.push(top, top, top, 1)
		tags, _ := g.randomEvent(User1, s)
		require.Equal(t, []ActionType{Fight}, tags)
		g.lastAction = Fight

		o.push(duelRoll(g, User1, g.user1.slotNear(Center), faceOffSkill, faceOffSkill, true))
		calls := o.calls
		g.faceOff()
		assert.Equal(t, 1, o.calls-calls, "the neutral zone has a single spot")
		assert.Equal(t, Center, g.puck.Position)
		assert.Equal(t, User1, g.puck.Side)
	})
}

func TestNetOff_NotInNeutralZone(t *testing.T) {
	script := []int{top, top, top, top, 1}

	o := &scriptOracle{queue: script, def: top}
	g := newTestGame(t, o)
	s := midGame(g, 2, Center)
	tags, ok := g.randomEvent(User1, s)
	require.True(t, ok)
	assert.Equal(t, []ActionType{BigPenalty}, tags, "the fifth draw goes to the big penalty")

	for _, zone := range []int{1, 3} {
		o := &scriptOracle{queue: append([]int(nil), script...), def: top}
		g := newTestGame(t, o)
		s := midGame(g, zone, Center)
		tags, _ := g.randomEvent(User1, s)
		assert.Equal(t, []ActionType{NetOff}, tags, "zone %d", zone)
	}
}

func TestBigPenalty(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	s := midGame(g, 2, Center)

	o.push(top, top, top, top, 1)
	o.push(duelRoll(g, User1, s, disciplineSkill, disciplineSkill, false))
	opp, _ := g.opponentOf(User1, s.Position)

	tags, ok := g.randomEvent(User1, s)
	require.True(t, ok)
	require.Equal(t, []ActionType{BigPenalty}, tags)
	g.lastAction = BigPenalty

	assert.Equal(t, []PlayerID{s.Player}, g.user1.Penalties, "the carrier lost the discipline duel")
	assert.Equal(t, bigPenaltyTurns, g.user1.player(s.Player).PenaltyTurns)
	assert.Equal(t, User2, g.puck.Side, "possession flips when the carrier's team is penalized")
	assert.Equal(t, opp.Player, g.puck.Player)
	assert.Equal(t, PenaltyKill1, g.user1.ActiveLine)
	assert.Equal(t, PowerPlay1, g.user2.ActiveLine)

	for i := 1; i <= bigPenaltyTurns; i++ {
		ev, err := g.Step()
		require.NoError(t, err)
		assert.Equal(t, bigPenaltyTurns-i, g.team(User1).player(s.Player).PenaltyTurns, "step %d", i)
		assert.Equal(t, i == bigPenaltyTurns, ev.Has(EndedPenaltyForTheFirstTeam), "step %d", i)
	}
	assert.Empty(t, g.user1.Penalties)
}

func TestPenalty_OpponentGuiltyKeepsPossession(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	s := midGame(g, 2, LeftWing)

	o.push(top, top, top, top, top, 1)
	o.push(duelRoll(g, User1, s, disciplineSkill, disciplineSkill, true))
	opp, _ := g.opponentOf(User1, s.Position)

	tags, _ := g.randomEvent(User1, s)
	require.Equal(t, []ActionType{SmallPenalty}, tags)
	assert.Equal(t, []PlayerID{opp.Player}, g.user2.Penalties)
	assert.Equal(t, smallPenaltyTurns, g.user2.player(opp.Player).PenaltyTurns)
	assert.Equal(t, User1, g.puck.Side)
	assert.Equal(t, s.Player, g.puck.Player)
	assert.Equal(t, User2, g.offender)
}

func TestFaceOffAfterSave(t *testing.T) {
	cases := []struct {
		shooter Position
		spot    []int
		want    Position
	}{
		{RightDefense, nil, RightWing},
		{LeftWing, nil, LeftWing},
		{Center, []int{0}, LeftWing},
		{Center, []int{1}, RightWing},
	}
	for _, tc := range cases {
		t.Run(string(tc.shooter), func(t *testing.T) {
			o := &scriptOracle{def: top}
			g := newTestGame(t, o)
			midGame(g, 3, tc.shooter)
			g.lastAction = Save

			o.push(tc.spot...)
			o.push(duelRoll(g, User1, g.user1.slotNear(tc.want), faceOffSkill, faceOffSkill, true))
			assert.Equal(t, []ActionType{FaceOff, FaceOffWin}, g.faceOff())
			assert.Equal(t, User1, g.puck.Side)
			assert.Equal(t, tc.want, g.puck.Position)
			assert.Equal(t, 3, g.zone, "a save doesn't move the play")
		})
	}
}

func TestMove(t *testing.T) {
	t.Run("won", func(t *testing.T) {
		o := &scriptOracle{def: top}
		g := newTestGame(t, o)
		s := midGame(g, 2, Center)
		o.push(top, duelRoll(g, User1, s, skatingSkill, checkingSkill, true))

		assert.Equal(t, []ActionType{Move}, g.move(User1, s))
		assert.Equal(t, 3, g.zone)
		assert.Equal(t, s.Player, g.puck.Player)
	})
	t.Run("hit", func(t *testing.T) {
		o := &scriptOracle{def: top}
		g := newTestGame(t, o)
		s := midGame(g, 2, Center)
		o.push(top, duelRoll(g, User1, s, skatingSkill, checkingSkill, false))
		opp, _ := g.opponentOf(User1, s.Position)

		assert.Equal(t, []ActionType{Move, Hit}, g.move(User1, s))
		assert.Equal(t, 2, g.zone)
		assert.Equal(t, User2, g.puck.Side)
		assert.Equal(t, opp.Player, g.puck.Player)
	})
	t.Run("user 2 moves toward zone 1", func(t *testing.T) {
		o := &scriptOracle{def: top}
		g := newTestGame(t, o)
		midGame(g, 2, Center)
		s := g.user2.slotNear(Center)
		g.givePuck(User2, s)
		o.push(top, duelRoll(g, User2, s, skatingSkill, checkingSkill, true))

		assert.Equal(t, []ActionType{Move}, g.move(User2, s))
		assert.Equal(t, 1, g.zone)
	})
}

func TestDangle(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	s := midGame(g, 1, LeftWing)
	o.push(duelRoll(g, User1, s, handlingSkill, pokeSkill, true))

	assert.Equal(t, []ActionType{Dangle}, g.dangle(User1, s))
	assert.Equal(t, 2, g.zone)

	o.push(duelRoll(g, User1, s, handlingSkill, pokeSkill, false))
	opp, _ := g.opponentOf(User1, s.Position)
	assert.Equal(t, []ActionType{Dangle, PokeCheck}, g.dangle(User1, s))
	assert.Equal(t, 2, g.zone)
	assert.Equal(t, User2, g.puck.Side)
	assert.Equal(t, opp.Player, g.puck.Player)
}

func TestPass_Turnovers(t *testing.T) {
	cases := []struct {
		name   string
		battle bool
		win    bool
		want   []ActionType
		side   Side
	}{
		{"caught", false, false, []ActionType{PassCaught}, User2},
		{"puck lost", true, false, []ActionType{PuckLose}, User2},
		{"battle won", true, true, []ActionType{Battle}, User1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &scriptOracle{def: top}
			g := newTestGame(t, o)
			s := midGame(g, 2, LeftWing)
			if tc.battle {
				o.push(1, duelRoll(g, User1, s, strengthSkill, strengthSkill, tc.win))
			} else {
				o.push(top, duelRoll(g, User1, s, iqSkill, iqSkill, tc.win))
			}
			opp, _ := g.opponentOf(User1, s.Position)

			assert.Equal(t, tc.want, g.pass(User1, s))
			assert.Equal(t, tc.side, g.puck.Side)
			if tc.side == User2 {
				assert.Equal(t, opp.Player, g.puck.Player)
			} else {
				assert.Equal(t, s.Player, g.puck.Player)
			}
		})
	}
}

func TestGoal_Morale(t *testing.T) {
	o := &scriptOracle{def: top}
	g := newTestGame(t, o)
	s := midGame(g, 3, Center)
	for _, team := range []*Team{g.user1, g.user2} {
		for _, p := range team.Players {
			p.Morale = 50
		}
		for _, gk := range team.Goalies {
			gk.Morale = 50
		}
	}

	rating := g.user1.relative(s, g.user1.player(s.Player).Stats.Shooting.average())
	o.push(contestRoll(rating, g.user2.goalie().saveRating(false), true))

	assert.Equal(t, []ActionType{Shot, Goal}, g.shoot(User1, s))
	assert.Equal(t, 1, g.user1.Score)
	assert.Equal(t, 2, g.zone)
	for _, p := range g.user1.Players {
		assert.Equal(t, 52.0, p.Morale, "scorer %s", p.ID)
	}
	for _, gk := range g.user1.Goalies {
		assert.Equal(t, 52.0, gk.Morale)
	}
	for _, p := range g.user2.Players {
		assert.Equal(t, 49.0, p.Morale, "opponent %s", p.ID)
	}
	for _, gk := range g.user2.Goalies {
		assert.Equal(t, 49.0, gk.Morale)
	}
}
