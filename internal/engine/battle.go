package engine

func faceOffSkill(p *FieldPlayer) float64 { return p.Stats.Defense.FaceOffs }
func openIceSkill(p *FieldPlayer) float64 { return p.openIce() }
func strengthSkill(p *FieldPlayer) float64 { return p.Stats.Strength.Strength }
func iqSkill(p *FieldPlayer) float64 { return p.Stats.IQ.average() }
func fightingSkill(p *FieldPlayer) float64 { return p.Stats.Strength.FightingSkill }
func disciplineSkill(p *FieldPlayer) float64 { return p.Stats.IQ.Discipline }
func skatingSkill(p *FieldPlayer) float64 { return p.Stats.Skating.average() }
func handlingSkill(p *FieldPlayer) float64 { return p.Stats.StickHandling.average() }

func checkingSkill(p *FieldPlayer) float64 {
	return (p.Stats.Defense.DefensiveAwareness + p.Stats.Strength.Strength) / 2
}

func pokeSkill(p *FieldPlayer) float64 {
	return (p.Stats.Defense.DefensiveAwareness + p.Stats.Defense.StickChecking) / 2
}

// battle settles a loose puck between the skater at s and the positional opponent. The winner
// takes the puck and its side is returned.
func (g *Game) battle(side Side, s Slot, skill func(*FieldPlayer) float64) Side {
	won, opp := g.duel(side, s, skill, skill)
	if won {
		g.givePuck(side, s)
		return side
	}
	g.givePuck(side.Opponent(), opp)
	return side.Opponent()
}
