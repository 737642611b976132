package engine

// action is the closed set of plays a puck carrier can choose.
type action int

const (
	actDump action = iota
	actShot
	actMove
	actDangle
	actPass
)

var actionOrder = [...]action{actDump, actShot, actMove, actDangle, actPass}

type weights [len(actionOrder)]int

// roleWeights are the base preferences, indexed by action.
var roleWeights = map[Role]weights{
	Playmaker:           {10, 15, 20, 15, 40},
	Shooter:             {10, 35, 20, 15, 20},
	Enforcer:            {25, 20, 25, 10, 20},
	ToughGuy:            {25, 15, 30, 10, 20},
	TryHarder:           {15, 20, 30, 15, 20},
	TwoWay:              {20, 20, 20, 15, 25},
	DefensiveForward:    {25, 10, 25, 10, 30},
	OffensiveDefenseman: {20, 25, 20, 15, 20},
	DefensiveDefenseman: {30, 10, 15, 5, 40},
}

// eligible reports whether a can be played in or out of the attack zone. Shots need the attack
// zone; dumps, moves and dangles are for getting there.
func (a action) eligible(inAttackZone bool) bool {
	switch a {
	case actShot:
		return inAttackZone
	case actDump, actMove, actDangle:
		return !inAttackZone
	}
	return true
}

func (g *Game) actionWeights(side Side, s Slot) weights {
	t := g.team(side)
	w := roleWeights[t.player(s.Player).Role]
	line := t.activeLine()

	switch {
	case line.Number.IsPowerPlay():
		w[actDump] += 3
		w[actShot] += 2
	case line.Number.IsPenaltyKill():
		w[actPass] += 3
	}

	switch line.Tactic {
	case Safe:
		w[actPass] += 2
	case Defensive:
		w[actPass]++
		w[actDump]++
	case Offensive:
		w[actShot]++
		w[actMove]++
		w[actDangle]++
	case Aggressive:
		w[actShot] += 2
		w[actMove] += 2
		w[actDangle] += 2
	}
	return w
}

// selectAction draws r in [1, 101) against the eligible weights scaled to a cumulative 100 and
// returns the first action whose threshold reaches r.
func (g *Game) selectAction(side Side, s Slot) action {
	w := g.actionWeights(side, s)
	attack := g.zone == side.attackZone()

	total := 0
	for _, a := range actionOrder {
		if a.eligible(attack) {
			total += w[a]
		}
	}
	r := g.rand(1, 101)
	if total == 0 {
		return actPass
	}
	cum := 0
	for _, a := range actionOrder {
		if !a.eligible(attack) {
			continue
		}
		cum += w[a]
		if cum*100 >= r*total {
			return a
		}
	}
	return actPass
}
