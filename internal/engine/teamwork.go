package engine

// computeTeamwork rebuilds the teamwork vector of a line from scratch. It only reads the line's
// slots and the players' roles and nationalities, so calling it twice yields the same vector.
func (t *Team) computeTeamwork(l *Line) {
	slots := l.slots()
	tw := make(map[PlayerID]float64, len(slots))
	roles := make(map[Role]int)
	nations := make(map[string]int)
	for _, s := range slots {
		p := t.Players[s.Player]
		tw[s.Player] = positionCoefficient(p.Position, s.Position)
		roles[p.Role]++
		nations[p.Nationality]++
	}

	if roles[DefensiveDefenseman] > 0 && roles[OffensiveDefenseman] > 0 {
		for _, s := range slots {
			if r := t.Players[s.Player].Role; r == DefensiveDefenseman || r == OffensiveDefenseman {
				tw[s.Player] *= 1.1
			}
		}
	}

	for i := 0; i < roles[ToughGuy]+roles[Enforcer]; i++ {
		for _, s := range slots {
			if r := t.Players[s.Player].Role; r == Playmaker || r == Shooter {
				tw[s.Player] *= 1.2
			}
		}
	}

	if roles[DefensiveForward] > 0 {
		for _, s := range slots {
			if s.Position.IsDefense() {
				tw[s.Player] *= 1.2
			}
		}
	}

	for _, s := range slots {
		if nations[t.Players[s.Player].Nationality] >= 2 {
			tw[s.Player] *= 1.05
		}
	}

	factor := 1.0
	for i := 0; i < roles[ToughGuy]+roles[Enforcer]; i++ {
		factor *= 0.9
	}
	for i := 0; i < roles[TryHarder]+roles[TwoWay]; i++ {
		factor *= 1.1
	}
	for id := range tw {
		tw[id] *= factor
	}

	l.Teamwork = tw
}
