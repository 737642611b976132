package engine

// Random event odds in basis points.
const (
	giveawayOdds     = 600
	takeawayOdds     = 1500
	puckOutOdds      = 50
	fightOdds        = 25
	netOffOdds       = 100
	bigPenaltyOdds   = 100
	smallPenaltyOdds = 1000
)

const (
	// turnoverBattleChance is the percent of giveaways and takeaways that end in a puck battle.
	turnoverBattleChance = 20
	maxPenalties         = 2
	bigPenaltyTurns      = 12
	smallPenaltyTurns    = 5
)

// randomEvent checks the random events in order and plays the first one that fires.
func (g *Game) randomEvent(side Side, s Slot) ([]ActionType, bool) {
	switch {
	case g.basisPoints(giveawayOdds):
		return g.turnover(Giveaway, side, s), true
	case g.basisPoints(takeawayOdds):
		return g.turnover(Takeaway, side, s), true
	case g.basisPoints(puckOutOdds):
		return []ActionType{PuckOut}, true
	case g.basisPoints(fightOdds):
		return g.fight(side, s), true
	case g.zone != 2 && g.basisPoints(netOffOdds):
		return []ActionType{NetOff}, true
	}

	if len(g.user1.Penalties) >= maxPenalties || len(g.user2.Penalties) >= maxPenalties {
		return nil, false
	}
	switch {
	case g.basisPoints(bigPenaltyOdds):
		return g.penalty(BigPenalty, bigPenaltyTurns, side, s), true
	case g.basisPoints(smallPenaltyOdds):
		return g.penalty(SmallPenalty, smallPenaltyTurns, side, s), true
	}
	return nil, false
}

func (g *Game) turnover(tag ActionType, side Side, s Slot) []ActionType {
	if g.percent(turnoverBattleChance) {
		g.battle(side, s, openIceSkill)
		return []ActionType{tag, Battle}
	}
	opp, _ := g.opponentOf(side, s.Position)
	g.givePuck(side.Opponent(), opp)
	return []ActionType{tag}
}

func (g *Game) fight(side Side, s Slot) []ActionType {
	winner := side
	if won, _ := g.duel(side, s, fightingSkill, fightingSkill); !won {
		winner = side.Opponent()
	}
	g.team(winner).addMorale(2, 2)
	g.team(winner.Opponent()).addMorale(-1, -3)
	return []ActionType{Fight}
}

// penalty sends the loser of a discipline duel to the box. The penalized team goes to its first
// penalty-kill unit and the other team to its first power-play unit unless either is already on
// special teams.
func (g *Game) penalty(tag ActionType, turns int, side Side, s Slot) []ActionType {
	won, opp := g.duel(side, s, disciplineSkill, disciplineSkill)
	guilty, offender := side, s
	if won {
		guilty, offender = side.Opponent(), opp
	}

	t := g.team(guilty)
	p := t.player(offender.Player)
	p.PenaltyTurns = turns
	p.penaltyTurn = g.turn
	t.Penalties = append(t.Penalties, offender.Player)
	g.offender = guilty

	if guilty == side {
		g.givePuck(side.Opponent(), opp)
	}

	if !t.ActiveLine.IsBrigade() {
		t.setLine(PenaltyKill1)
	}
	if o := g.team(guilty.Opponent()); !o.ActiveLine.IsBrigade() {
		o.setLine(PowerPlay1)
	}
	return []ActionType{tag}
}
