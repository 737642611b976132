package engine

var sides = [...]Side{User1, User2}

// changeShifts advances both shift timers and rotates any line whose shift is over. The skaters
// coming off pay the strength cost of the line's priority; a team holding the puck keeps it on
// the same slot of the new line.
func (g *Game) changeShifts() []ActionType {
	var tags []ActionType
	for _, side := range sides {
		t := g.team(side)
		l := t.activeLine()
		l.ShiftTimer++
		if l.ShiftTimer < l.Priority.shiftLength() {
			continue
		}

		holding := g.puck != nil && g.puck.Side == side
		var puckAt Position
		if holding {
			_, s := g.carrier()
			puckAt = s.Position
		}

		cost := l.Priority.strengthCost()
		for _, s := range t.field() {
			t.player(s.Player).addStrength(-cost)
		}
		l.ShiftTimer = 0
		t.setLine(l.Number.next())

		if holding {
			g.givePuck(side, t.slotNear(puckAt))
		}
		tags = append(tags, changeFiveTag(side))
	}
	return tags
}

// tickPenalties counts down every penalty called before this turn. When a team's box empties it
// goes back to its first line, and so does an opponent left on the power play with nobody in the
// box.
func (g *Game) tickPenalties() []ActionType {
	var tags []ActionType
	for _, side := range sides {
		t := g.team(side)
		if len(t.Penalties) == 0 {
			continue
		}
		kept := make([]PlayerID, 0, len(t.Penalties))
		for _, id := range t.Penalties {
			p := t.player(id)
			if p.penaltyTurn < g.turn {
				p.PenaltyTurns--
			}
			if p.PenaltyTurns > 0 {
				kept = append(kept, id)
				continue
			}
			p.PenaltyTurns = 0
			p.penaltyTurn = 0
			tags = append(tags, endedPenaltyTag(side))
		}
		t.Penalties = kept
		if len(kept) > 0 {
			continue
		}
		if t.ActiveLine.IsBrigade() {
			t.setLine(FirstLine)
		}
		if o := g.team(side.Opponent()); o.ActiveLine.IsPowerPlay() && len(o.Penalties) == 0 {
			o.setLine(FirstLine)
		}
	}
	return tags
}
