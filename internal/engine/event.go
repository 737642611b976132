package engine

// TeamSnapshot is a deep copy of a team taken when an event is recorded.
type TeamSnapshot struct {
	Team  *Team  `json:"team"`
	OnIce []Slot `json:"on_ice"`
}

// Event is the record of one turn. Zone, turn and puck owner are post-tick values.
type Event struct {
	Actions   []ActionType `json:"actions"`
	Zone      int          `json:"zone"`
	Turn      int          `json:"turn"`
	PuckOwner *PuckOwner   `json:"puck_owner,omitempty"`
	User1     TeamSnapshot `json:"user1"`
	User2     TeamSnapshot `json:"user2"`
}

// Has reports whether the event carries the tag.
func (e Event) Has(a ActionType) bool {
	for _, x := range e.Actions {
		if x == a {
			return true
		}
	}
	return false
}

func (g *Game) snapshot(actions []ActionType) Event {
	ev := Event{
		Actions: actions,
		Zone:    g.zone,
		Turn:    g.turn,
		User1:   TeamSnapshot{Team: g.user1.clone(), OnIce: g.user1.field()},
		User2:   TeamSnapshot{Team: g.user2.clone(), OnIce: g.user2.field()},
	}
	if g.puck != nil {
		p := *g.puck
		ev.PuckOwner = &p
	}
	return ev
}

// TeamView is the read-only summary of one side.
type TeamView struct {
	Name        string                `json:"name"`
	Score       int                   `json:"score"`
	ActiveLine  LineNumber            `json:"active_line"`
	ShiftTimer  int                   `json:"shift_timer"`
	GoalieOut   bool                  `json:"goalie_out"`
	Penalties   []PenaltyView         `json:"penalties"`
	OnIce       []Slot                `json:"on_ice"`
	TimeoutUsed bool                  `json:"timeout_used"`
	SpeechUsed  bool                  `json:"speech_used"`
	Tactics     map[LineNumber]Tactic `json:"tactics"`
}

type PenaltyView struct {
	Player    PlayerID `json:"player"`
	TurnsLeft int      `json:"turns_left"`
}

// View is what Query returns.
type View struct {
	Turn       int        `json:"turn"`
	Zone       int        `json:"zone"`
	Finished   bool       `json:"finished"`
	Winner     *Side      `json:"winner,omitempty"`
	PuckOwner  *PuckOwner `json:"puck_owner,omitempty"`
	LastAction ActionType `json:"last_action,omitempty"`
	User1      TeamView   `json:"user1"`
	User2      TeamView   `json:"user2"`
}

// Query inspects the game without changing it.
func (g *Game) Query() View {
	v := View{
		Turn:       g.turn,
		Zone:       g.zone,
		Finished:   g.winner != nil,
		LastAction: g.lastAction,
		User1:      g.user1.view(),
		User2:      g.user2.view(),
	}
	if g.winner != nil {
		w := *g.winner
		v.Winner = &w
	}
	if g.puck != nil {
		p := *g.puck
		v.PuckOwner = &p
	}
	return v
}

func (t *Team) view() TeamView {
	v := TeamView{
		Name:        t.Name,
		Score:       t.Score,
		ActiveLine:  t.ActiveLine,
		ShiftTimer:  t.activeLine().ShiftTimer,
		GoalieOut:   t.GoalieOut,
		Penalties:   make([]PenaltyView, 0, len(t.Penalties)),
		OnIce:       t.field(),
		TimeoutUsed: t.TimeoutUsed,
		SpeechUsed:  t.SpeechUsed,
		Tactics:     make(map[LineNumber]Tactic, len(t.Lines)),
	}
	for _, id := range t.Penalties {
		v.Penalties = append(v.Penalties, PenaltyView{Player: id, TurnsLeft: t.Players[id].PenaltyTurns})
	}
	for n, l := range t.Lines {
		v.Tactics[n] = l.Tactic
	}
	return v
}
