package engine

import "fmt"

// CommandKind names a coach command.
type CommandKind string

const (
	CmdTakeTimeout       CommandKind = "take_timeout"
	CmdCoachSpeech       CommandKind = "coach_speech"
	CmdPullGoalie        CommandKind = "pull_goalie"
	CmdReturnGoalie      CommandKind = "return_goalie"
	CmdChangeTactic      CommandKind = "change_tactic"
	CmdChangeIcePriority CommandKind = "change_ice_priority"
	CmdSwapPositions     CommandKind = "swap_positions"
)

// Command is the serialisable form of a coach command, used by drivers that store and replay them.
type Command struct {
	Kind     CommandKind `json:"kind"`
	Side     Side        `json:"side"`
	Line     LineNumber  `json:"line,omitempty"`
	Tactic   Tactic      `json:"tactic,omitempty"`
	Priority IcePriority `json:"priority,omitempty"`
	Pos1     Position    `json:"pos1,omitempty"`
	Pos2     Position    `json:"pos2,omitempty"`
}

// Apply dispatches a command to the matching method.
func (g *Game) Apply(c Command) error {
	switch c.Kind {
	case CmdTakeTimeout:
		return g.TakeTimeout(c.Side)
	case CmdCoachSpeech:
		return g.CoachSpeech(c.Side)
	case CmdPullGoalie:
		return g.PullGoalie(c.Side)
	case CmdReturnGoalie:
		return g.ReturnGoalie(c.Side)
	case CmdChangeTactic:
		return g.ChangeTactic(c.Side, c.Line, c.Tactic)
	case CmdChangeIcePriority:
		return g.ChangeIcePriority(c.Side, c.Line, c.Priority)
	case CmdSwapPositions:
		return g.SwapPositions(c.Side, c.Line, c.Pos1, c.Pos2)
	}
	return fmt.Errorf("%w: command %q", ErrInvalidValue, c.Kind)
}

// commandTeam resolves the side of a command after the common checks.
func (g *Game) commandTeam(side Side) (*Team, error) {
	if g.winner != nil {
		return nil, ErrGameFinished
	}
	if !side.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSide, side)
	}
	return g.team(side), nil
}

// TakeTimeout rests the team (+5 strength, +3 to every IQ stat) and gives the opponent +3
// strength and morale. Once per game.
func (g *Game) TakeTimeout(side Side) error {
	t, err := g.commandTeam(side)
	if err != nil {
		return err
	}
	if t.TimeoutUsed {
		return fmt.Errorf("%w: timeout", ErrAlreadyUsed)
	}
	t.TimeoutUsed = true
	for _, p := range t.Players {
		p.addStrength(5)
		p.addIQ(3)
	}
	t.goalie().addStrength(5)
	o := g.team(side.Opponent())
	for _, p := range o.Players {
		p.addStrength(3)
		p.addMorale(3)
	}
	o.goalie().addStrength(3)
	o.goalie().addMorale(3)
	g.pending = append(g.pending, TakeTO)
	return nil
}

// CoachSpeech gives +5 strength, +3 morale and +2 IQ to the team. Once per game.
func (g *Game) CoachSpeech(side Side) error {
	t, err := g.commandTeam(side)
	if err != nil {
		return err
	}
	if t.SpeechUsed {
		return fmt.Errorf("%w: coach speech", ErrAlreadyUsed)
	}
	t.SpeechUsed = true
	for _, p := range t.Players {
		p.addStrength(5)
		p.addMorale(3)
		p.addIQ(2)
	}
	t.goalie().addStrength(5)
	t.goalie().addMorale(3)
	g.pending = append(g.pending, CoachSpeech)
	return nil
}

func (g *Game) PullGoalie(side Side) error {
	t, err := g.commandTeam(side)
	if err != nil {
		return err
	}
	if t.GoalieOut {
		return ErrGoalieState
	}
	t.GoalieOut = true
	g.pending = append(g.pending, GoalieOut)
	return nil
}

func (g *Game) ReturnGoalie(side Side) error {
	t, err := g.commandTeam(side)
	if err != nil {
		return err
	}
	if !t.GoalieOut {
		return ErrGoalieState
	}
	t.GoalieOut = false
	g.pending = append(g.pending, GoalieBack)
	return nil
}

func (g *Game) ChangeTactic(side Side, line LineNumber, tactic Tactic) error {
	t, err := g.commandTeam(side)
	if err != nil {
		return err
	}
	l, ok := t.Lines[line]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLine, line)
	}
	if !tactic.valid() {
		return fmt.Errorf("%w: tactic %q", ErrInvalidValue, tactic)
	}
	l.Tactic = tactic
	return nil
}

func (g *Game) ChangeIcePriority(side Side, line LineNumber, priority IcePriority) error {
	t, err := g.commandTeam(side)
	if err != nil {
		return err
	}
	l, ok := t.Lines[line]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLine, line)
	}
	if !priority.valid() {
		return fmt.Errorf("%w: ice priority %q", ErrInvalidValue, priority)
	}
	l.Priority = priority
	return nil
}

// SwapPositions exchanges two skaters of a line and recomputes the line's teamwork.
func (g *Game) SwapPositions(side Side, line LineNumber, a, b Position) error {
	t, err := g.commandTeam(side)
	if err != nil {
		return err
	}
	l, ok := t.Lines[line]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLine, line)
	}
	ida, okA := l.Slots[a]
	idb, okB := l.Slots[b]
	if !okA {
		return fmt.Errorf("%w: %q in %s", ErrUnknownPosition, a, line)
	}
	if !okB {
		return fmt.Errorf("%w: %q in %s", ErrUnknownPosition, b, line)
	}
	l.Slots[a], l.Slots[b] = idb, ida
	t.computeTeamwork(l)

	if g.puck != nil && g.puck.Side == side && t.ActiveLine == line {
		switch g.puck.Player {
		case ida:
			g.puck.Position = b
		case idb:
			g.puck.Position = a
		}
	}
	return nil
}
