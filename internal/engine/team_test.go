package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(slots []Slot) []Position {
	out := make([]Position, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Position)
	}
	return out
}

func penalize(t *Team, id PlayerID, turns int) {
	t.Players[id].PenaltyTurns = turns
	t.Penalties = append(t.Penalties, id)
}

func TestField_FullLine(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(1))
	f := g.user1.field()
	assert.Equal(t, skaterPositions, positions(f))
	assert.Equal(t, PlayerID("home-C1"), f[0].Player)
}

func TestField_PenaltyFillsFromBenchAndTrims(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(1))
	team := g.user1

	penalize(team, "home-LD1", 5)
	f := team.field()
	require.Len(t, f, 4)
	assert.Equal(t, []Position{Center, LeftWing, LeftDefense, RightDefense}, positions(f))
	ld := f[2]
	assert.NotEqual(t, PlayerID("home-LD1"), ld.Player)
	assert.Equal(t, LeftDefense, team.player(ld.Player).Position, "bench fill prefers the native position")

	penalize(team, "home-C1", 5)
	f = team.field()
	require.Len(t, f, 3)
	assert.Equal(t, []Position{Center, LeftDefense, RightDefense}, positions(f))
	for _, s := range f {
		assert.False(t, team.player(s.Player).penalized())
	}
}

func TestField_PenaltyKillLine(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(1))
	team := g.user2
	team.setLine(PenaltyKill1)
	penalize(team, "away-RW1", 12)
	assert.Equal(t, []Position{Center, LeftWing, LeftDefense, RightDefense}, positions(team.field()))
}

func TestSlotNear(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(1))
	team := g.user1
	team.setLine(PenaltyKill1)
	assert.Equal(t, LeftWing, team.slotNear(RightWing).Position, "missing RW falls back to the mirror")
	assert.Equal(t, LeftDefense, team.slotNear(LeftDefense).Position)
}

func TestOpponentOf(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(1))

	cases := []struct {
		carrier Position
		want    Position
	}{
		{Center, Center},
		{LeftWing, RightDefense},
		{RightWing, LeftDefense},
		{LeftDefense, RightWing},
		{RightDefense, LeftWing},
	}
	for _, tc := range cases {
		opp, coef := g.opponentOf(User1, tc.carrier)
		assert.Equal(t, tc.want, opp.Position, "carrier %s", tc.carrier)
		assert.Equal(t, 1.0, coef)
	}

	g.user2.setLine(PenaltyKill1)
	penalize(g.user2, "away-C3", 5)

	opp, coef := g.opponentOf(User1, LeftDefense)
	assert.Equal(t, LeftWing, opp.Position, "RW is missing on the kill, mirror takes it")
	assert.Equal(t, 0.5, coef, "defending team is short-handed")

	_, coef = g.opponentOf(User2, Center)
	assert.Equal(t, 1.5, coef, "defending team has the extra skater")

	opp, coef = g.opponentOf(User1, RightDefense)
	assert.Equal(t, LeftDefense, opp.Position, "RD meets LD with the carrier up a skater")
	assert.Equal(t, 0.5, coef)

	opp, coef = g.opponentOf(User2, RightDefense)
	assert.Equal(t, LeftDefense, opp.Position, "RD meets LD with the carrier down a skater")
	assert.Equal(t, 1.5, coef)
}

func TestTeamClone_IsDeep(t *testing.T) {
	g := newTestGame(t, NewSeedOracle(1))
	c := g.user1.clone()
	c.Players["home-C1"].Morale = 0
	c.Lines[FirstLine].Slots[Center] = "x"
	c.Lines[FirstLine].Teamwork["home-C1"] = 9
	c.Goalies[MainGoalie].Morale = 0

	assert.NotZero(t, g.user1.Players["home-C1"].Morale)
	assert.Equal(t, PlayerID("home-C1"), g.user1.Lines[FirstLine].Slots[Center])
	assert.NotEqual(t, 9.0, g.user1.Lines[FirstLine].Teamwork["home-C1"])
	assert.NotZero(t, g.user1.Goalies[MainGoalie].Morale)
}
