package engine

import "math"

// positionCoefficient measures how far a slot is from the player's native position.
func positionCoefficient(native, slot Position) float64 {
	switch {
	case native == slot:
		return 1.0
	case native != Center && slot == native.mirror():
		return 0.95
	case slot == Center:
		return 0.75
	default:
		return 0.80
	}
}

// hasWon resolves a contest between ratings a and b.
//
// r is drawn from [1, floor(a+b)+1). The stronger side wins when r exceeds the weaker rating and
// the weaker side wins when r falls at or below its own rating. On equal ratings a is treated as
// the weaker side.
func (g *Game) hasWon(a, b float64) bool {
	total := int(math.Floor(a + b))
	if total < 1 {
		total = 1
	}
	r := g.rand(1, total+1)
	if a > b {
		return float64(r) > b
	}
	return float64(r) <= a
}

// percent draws r in [1, 101) and reports whether it is at most p.
func (g *Game) percent(p int) bool {
	return g.rand(1, 101) <= p
}

// basisPoints draws r in [1, 10001) and reports whether it is at most bp.
func (g *Game) basisPoints(bp int) bool {
	return g.rand(1, 10001) <= bp
}
