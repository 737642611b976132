package engine

// LineDescriptor is the roster input for one five.
type LineDescriptor struct {
	Number   LineNumber            `json:"number" validate:"required"`
	Slots    map[Position]PlayerID `json:"slots" validate:"required"`
	Priority IcePriority           `json:"priority" validate:"oneof=super_low low normal high super_high"`
	Tactic   Tactic                `json:"tactic" validate:"oneof=safe defensive neutral offensive aggressive"`
}

// Line is a five in game state. Slots hold ids only; the team owns the players.
type Line struct {
	Number     LineNumber            `json:"number"`
	Slots      map[Position]PlayerID `json:"slots"`
	Priority   IcePriority           `json:"priority"`
	Tactic     Tactic                `json:"tactic"`
	ShiftTimer int                   `json:"shift_timer"`
	Teamwork   map[PlayerID]float64  `json:"teamwork"`
}

func newLine(d LineDescriptor) *Line {
	slots := make(map[Position]PlayerID, len(d.Slots))
	for pos, id := range d.Slots {
		slots[pos] = id
	}
	return &Line{
		Number:   d.Number,
		Slots:    slots,
		Priority: d.Priority,
		Tactic:   d.Tactic,
		Teamwork: make(map[PlayerID]float64, len(slots)),
	}
}

// expectedPositions lists the slots a line of this number must fill.
func expectedPositions(n LineNumber) []Position {
	if n.IsPenaltyKill() {
		return []Position{Center, LeftWing, LeftDefense, RightDefense}
	}
	return skaterPositions
}

// slots returns the line in canonical order.
func (l *Line) slots() []Slot {
	out := make([]Slot, 0, len(l.Slots))
	for _, pos := range skaterPositions {
		if id, ok := l.Slots[pos]; ok {
			out = append(out, Slot{Position: pos, Player: id})
		}
	}
	return out
}

func (l *Line) clone() *Line {
	c := *l
	c.Slots = make(map[Position]PlayerID, len(l.Slots))
	for pos, id := range l.Slots {
		c.Slots[pos] = id
	}
	c.Teamwork = make(map[PlayerID]float64, len(l.Teamwork))
	for id, tw := range l.Teamwork {
		c.Teamwork[id] = tw
	}
	return &c
}
