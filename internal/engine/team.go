package engine

import "sort"

// Slot is one skater standing at one position.
type Slot struct {
	Position Position `json:"position"`
	Player   PlayerID `json:"player"`
}

// Goalies is the pair of goalies every roster carries.
type Goalies struct {
	Main       Goalie `json:"main"`
	Substitute Goalie `json:"substitute"`
}

// TeamDescriptor is what the host supplies for one side at game start.
type TeamDescriptor struct {
	Name    string           `json:"name" validate:"required"`
	Players []FieldPlayer    `json:"players" validate:"required,dive"`
	Goalies Goalies          `json:"goalies"`
	Lines   []LineDescriptor `json:"lines" validate:"len=8,dive"`
}

// Team is one side of a running game.
type Team struct {
	Side         Side                      `json:"side"`
	Name         string                    `json:"name"`
	Lines        map[LineNumber]*Line      `json:"lines"`
	Players      map[PlayerID]*FieldPlayer `json:"players"`
	Goalies      map[GoalieSlot]*Goalie    `json:"goalies"`
	ActiveLine   LineNumber                `json:"active_line"`
	ActiveGoalie GoalieSlot                `json:"active_goalie"`
	GoalieOut    bool                      `json:"goalie_out"`
	Penalties    []PlayerID                `json:"penalties"`
	Score        int                       `json:"score"`
	TimeoutUsed  bool                      `json:"timeout_used"`
	SpeechUsed   bool                      `json:"speech_used"`
}

func (t *Team) activeLine() *Line { return t.Lines[t.ActiveLine] }

func (t *Team) goalie() *Goalie { return t.Goalies[t.ActiveGoalie] }

func (t *Team) player(id PlayerID) *FieldPlayer { return t.Players[id] }

// playerIDs returns every skater id in sorted order.
func (t *Team) playerIDs() []PlayerID {
	ids := make([]PlayerID, 0, len(t.Players))
	for id := range t.Players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// field derives the skaters currently on the ice from the active line.
//
// A penalized slot is filled from the bench, preferring a player whose native position matches.
// The result is then trimmed to five minus the penalty count, dropping RW first and LW second,
// so a team always has between three and five skaters out.
func (t *Team) field() []Slot {
	line := t.activeLine()
	onIce := make(map[PlayerID]bool, 5)
	out := make([]Slot, 0, 5)
	var vacant []Position
	for _, s := range line.slots() {
		if t.Players[s.Player].penalized() {
			vacant = append(vacant, s.Position)
			continue
		}
		onIce[s.Player] = true
		out = append(out, s)
	}

	if len(vacant) > 0 {
		var bench []PlayerID
		for _, id := range t.playerIDs() {
			if !onIce[id] && !t.Players[id].penalized() {
				bench = append(bench, id)
			}
		}
		for _, pos := range vacant {
			pick := -1
			for i, id := range bench {
				if t.Players[id].Position == pos {
					pick = i
					break
				}
			}
			if pick < 0 && len(bench) > 0 {
				pick = 0
			}
			if pick < 0 {
				continue
			}
			out = append(out, Slot{Position: pos, Player: bench[pick]})
			bench = append(bench[:pick], bench[pick+1:]...)
		}
	}

	limit := 5 - len(t.Penalties)
	for _, drop := range []Position{RightWing, LeftWing} {
		if len(out) <= limit {
			break
		}
		for i, s := range out {
			if s.Position == drop {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}

	sort.Slice(out, func(i, j int) bool { return positionIndex(out[i].Position) < positionIndex(out[j].Position) })
	return out
}

func positionIndex(p Position) int {
	for i, pos := range skaterPositions {
		if pos == p {
			return i
		}
	}
	return len(skaterPositions)
}

// onIce reports the slot of id in the current field.
func (t *Team) onIce(id PlayerID) (Slot, bool) {
	for _, s := range t.field() {
		if s.Player == id {
			return s, true
		}
	}
	return Slot{}, false
}

// slotNear resolves a position to the closest occupied slot: the position itself, its mirror,
// the center, then the first skater out.
func (t *Team) slotNear(pos Position) Slot {
	f := t.field()
	for _, want := range []Position{pos, pos.mirror(), Center} {
		for _, s := range f {
			if s.Position == want {
				return s
			}
		}
	}
	return f[0]
}

// teamwork looks the player up in the active line; bench fill-ins play at a neutral 1.0.
func (t *Team) teamwork(id PlayerID) float64 {
	if tw, ok := t.activeLine().Teamwork[id]; ok {
		return tw
	}
	return 1.0
}

// relative weights a raw stat by the player's condition and fit at the slot.
func (t *Team) relative(s Slot, stat float64) float64 {
	p := t.Players[s.Player]
	return (stat + p.Morale + p.Stats.Strength.Strength) / 3 * t.teamwork(s.Player) * positionCoefficient(p.Position, s.Position)
}

func (t *Team) addMorale(players, goalie float64) {
	for _, p := range t.Players {
		p.addMorale(players)
	}
	for _, g := range t.Goalies {
		g.addMorale(goalie)
	}
}

// setLine switches the active five and restarts its shift.
func (t *Team) setLine(n LineNumber) {
	t.ActiveLine = n
	t.Lines[n].ShiftTimer = 0
}

func (t *Team) clone() *Team {
	c := *t
	c.Lines = make(map[LineNumber]*Line, len(t.Lines))
	for n, l := range t.Lines {
		c.Lines[n] = l.clone()
	}
	c.Players = make(map[PlayerID]*FieldPlayer, len(t.Players))
	for id, p := range t.Players {
		cp := *p
		c.Players[id] = &cp
	}
	c.Goalies = make(map[GoalieSlot]*Goalie, len(t.Goalies))
	for slot, g := range t.Goalies {
		cg := *g
		c.Goalies[slot] = &cg
	}
	c.Penalties = append([]PlayerID(nil), t.Penalties...)
	return &c
}
