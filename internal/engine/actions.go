package engine

const (
	puckBattleChance   = 20
	reboundChance      = 30
	offsideChance      = 15
	icingChance        = 10
	interceptChance    = 25
	deepDumpChance     = 50
	emptyNetRating     = 10.0
	extraAttackerBonus = 20.0
)

// doAction plays a normal turn: a random event if one fires, otherwise the chosen play.
func (g *Game) doAction() []ActionType {
	if g.puck == nil {
		g.lastAction = StartGame
		return g.faceOff()
	}
	side, s := g.carrier()
	if tags, ok := g.randomEvent(side, s); ok {
		return tags
	}
	switch g.selectAction(side, s) {
	case actDump:
		return g.dump(side, s)
	case actShot:
		return g.shoot(side, s)
	case actMove:
		return g.move(side, s)
	case actDangle:
		return g.dangle(side, s)
	default:
		return g.pass(side, s)
	}
}

func (g *Game) pass(side Side, s Slot) []ActionType {
	if g.percent(puckBattleChance) {
		won, opp := g.duel(side, s, strengthSkill, strengthSkill)
		if won {
			return []ActionType{Battle}
		}
		g.givePuck(side.Opponent(), opp)
		return []ActionType{PuckLose}
	}

	won, opp := g.duel(side, s, iqSkill, iqSkill)
	if !won {
		g.givePuck(side.Opponent(), opp)
		return []ActionType{PassCaught}
	}
	var mates []Slot
	for _, m := range g.team(side).field() {
		if m.Position != s.Position {
			mates = append(mates, m)
		}
	}
	if len(mates) > 0 {
		g.givePuck(side, mates[g.rand(0, len(mates))])
	}
	return []ActionType{Pass}
}

// shoot resolves a shot on goal. A goalie who has just seen a pass is judged on positioning, and
// otherwise on reflexes.
func (g *Game) shoot(side Side, s Slot) []ActionType {
	own, other := g.team(side), g.team(side.Opponent())
	rating := own.relative(s, own.player(s.Player).Stats.Shooting.average())
	if own.GoalieOut {
		rating += extraAttackerBonus
	}
	save := emptyNetRating
	if !other.GoalieOut {
		save = other.goalie().saveRating(g.lastAction == Pass)
	}

	if g.hasWon(rating, save) {
		own.Score++
		own.addMorale(2, 2)
		other.addMorale(-1, -1)
		g.zone = 2
		return []ActionType{Shot, Goal}
	}
	if g.percent(reboundChance) {
		return []ActionType{Shot, Rebound}
	}
	return []ActionType{Shot, Save}
}

func (g *Game) move(side Side, s Slot) []ActionType {
	if g.percent(offsideChance) {
		g.zone = 2
		return []ActionType{Move, Offside}
	}
	won, opp := g.duel(side, s, skatingSkill, checkingSkill)
	if !won {
		g.givePuck(side.Opponent(), opp)
		return []ActionType{Move, Hit}
	}
	g.advanceZone(side)
	return []ActionType{Move}
}

func (g *Game) dangle(side Side, s Slot) []ActionType {
	won, opp := g.duel(side, s, handlingSkill, pokeSkill)
	if !won {
		g.givePuck(side.Opponent(), opp)
		return []ActionType{Dangle, PokeCheck}
	}
	g.advanceZone(side)
	return []ActionType{Dangle}
}

// dump clears the puck. From the neutral zone it is a dump-in to the attack zone; from the
// defensive zone it is a dump-out that may be intercepted. Penalty-kill units can't ice the puck.
func (g *Game) dump(side Side, s Slot) []ActionType {
	pk := g.team(side).ActiveLine.IsPenaltyKill()

	if g.zone == 2 {
		if !pk && s.Position.IsDefense() && g.percent(icingChance) {
			g.offender = side
			return []ActionType{Icing}
		}
		g.givePuck(side, g.dumpTarget(side, s, pk))
		g.zone = side.attackZone()
		return []ActionType{DumpIn}
	}

	if g.percent(interceptChance) {
		var defenders []Slot
		for _, d := range g.team(side.Opponent()).field() {
			if d.Position.IsDefense() {
				defenders = append(defenders, d)
			}
		}
		if len(defenders) == 0 {
			opp, _ := g.opponentOf(side, s.Position)
			defenders = append(defenders, opp)
		}
		g.givePuck(side.Opponent(), defenders[g.rand(0, len(defenders))])
		return []ActionType{DumpOut, PassCaught}
	}
	if !pk && g.percent(icingChance) {
		g.offender = side
		return []ActionType{Icing}
	}
	if g.percent(deepDumpChance) {
		g.zone = side.attackZone()
	} else {
		g.zone = 2
	}
	g.givePuck(side, g.dumpTarget(side, s, pk))
	return []ActionType{DumpOut}
}

// dumpTarget picks who chases the dump: a random wing other than the carrier, or for a
// penalty-kill unit the right wing and then the center.
func (g *Game) dumpTarget(side Side, s Slot, pk bool) Slot {
	f := g.team(side).field()
	if pk {
		for _, want := range []Position{RightWing, Center} {
			for _, m := range f {
				if m.Position == want && m.Position != s.Position {
					return m
				}
			}
		}
	}
	var wings []Slot
	for _, m := range f {
		if m.Position.IsWing() && m.Position != s.Position {
			wings = append(wings, m)
		}
	}
	if len(wings) == 0 {
		return s
	}
	return wings[g.rand(0, len(wings))]
}
