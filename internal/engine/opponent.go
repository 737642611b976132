package engine

// opposite is the slot an attacker at a position runs into.
var opposite = map[Position]Position{
	Center:       Center,
	LeftWing:     RightDefense,
	RightWing:    LeftDefense,
	LeftDefense:  RightWing,
	RightDefense: LeftWing,
}

// opponentOf picks the defender facing the skater at pos and the manpower coefficient applied to
// the defender's rating: 1.5 when the defending team has more skaters out, 0.5 when it has fewer.
// A right defenseman meets the left defenseman instead of the wing whenever the counts differ.
func (g *Game) opponentOf(side Side, pos Position) (Slot, float64) {
	own, opp := g.team(side), g.team(side.Opponent())
	coef := 1.0
	switch n, m := len(own.field()), len(opp.field()); {
	case m > n:
		coef = 1.5
	case m < n:
		coef = 0.5
	}
	target := opposite[pos]
	if pos == RightDefense && coef != 1.0 {
		target = LeftDefense
	}
	return opp.slotNear(target), coef
}

// duel runs a head-to-head between the skater at s and the positional opponent. attack is read
// from the skater and defend from the opponent.
func (g *Game) duel(side Side, s Slot, attack, defend func(*FieldPlayer) float64) (won bool, opp Slot) {
	own, other := g.team(side), g.team(side.Opponent())
	opp, coef := g.opponentOf(side, s.Position)
	a := own.relative(s, attack(own.player(s.Player)))
	b := other.relative(opp, defend(other.player(opp.Player))) * coef
	return g.hasWon(a, b), opp
}
