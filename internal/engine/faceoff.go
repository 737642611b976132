package engine

func isFaceOffTrigger(a ActionType) bool {
	switch a {
	case StartGame, Goal, Save, EndOfPeriod, Fight, PuckOut, NetOff, SmallPenalty, BigPenalty, Icing:
		return true
	}
	return false
}

// faceOff restarts play after a stoppage. The spot depends on what stopped play; the draw is a
// face_offs battle between the skater at the spot and the positional opponent.
func (g *Game) faceOff() []ActionType {
	side, pos := User1, Center
	switch g.lastAction {
	case StartGame, Goal, EndOfPeriod:
		g.zone = 2
	case Save:
		if g.puck != nil {
			shooter, s := g.carrier()
			side, pos = shooter, g.wingFor(s.Position)
		}
	case Fight, PuckOut, NetOff:
		pos = g.zoneSpot(g.zone)
	case Icing, SmallPenalty, BigPenalty:
		g.zone = g.offender.defensiveZone()
		pos = g.zoneSpot(g.zone)
	}
	g.battle(side, g.team(side).slotNear(pos), faceOffSkill)
	return []ActionType{FaceOff, FaceOffWin}
}

// wingFor maps a shot origin to the face-off wing on the same side of the ice.
func (g *Game) wingFor(p Position) Position {
	switch p {
	case LeftWing, LeftDefense:
		return LeftWing
	case RightWing, RightDefense:
		return RightWing
	}
	return []Position{LeftWing, RightWing}[g.rand(0, 2)]
}

// zoneSpot picks a face-off position for zone, seen from user 1's bench.
func (g *Game) zoneSpot(zone int) Position {
	switch zone {
	case 1:
		return []Position{LeftDefense, RightDefense}[g.rand(0, 2)]
	case 3:
		return []Position{LeftWing, RightWing}[g.rand(0, 2)]
	}
	return Center
}
