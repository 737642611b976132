package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a descriptor and reports every problem at once as a *RosterError.
func (d TeamDescriptor) Validate() error {
	rerr := &RosterError{Team: d.Name}

	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidRoster, err)
		}
		for _, fe := range verrs {
			rerr.add(fieldPath(fe.Namespace()), describe(fe))
		}
	}

	players := make(map[PlayerID]*FieldPlayer, len(d.Players))
	for i := range d.Players {
		p := &d.Players[i]
		if _, dup := players[p.ID]; dup {
			rerr.add(fmt.Sprintf("players[%d].id", i), fmt.Sprintf("duplicate id %q", p.ID))
			continue
		}
		players[p.ID] = p
	}
	for _, g := range []Goalie{d.Goalies.Main, d.Goalies.Substitute} {
		if _, clash := players[g.ID]; clash {
			rerr.add("goalies", fmt.Sprintf("id %q is also a field player", g.ID))
		}
	}
	if d.Goalies.Main.ID != "" && d.Goalies.Main.ID == d.Goalies.Substitute.ID {
		rerr.add("goalies", "main and substitute must differ")
	}

	seen := make(map[LineNumber]bool, len(lineNumbers))
	inRegular := make(map[PlayerID]bool, len(players))
	for i, ld := range d.Lines {
		path := fmt.Sprintf("lines[%d]", i)
		if !ld.Number.valid() {
			rerr.add(path+".number", fmt.Sprintf("unknown line %q", ld.Number))
			continue
		}
		if seen[ld.Number] {
			rerr.add(path+".number", fmt.Sprintf("line %q listed twice", ld.Number))
			continue
		}
		seen[ld.Number] = true

		want := expectedPositions(ld.Number)
		if len(ld.Slots) != len(want) {
			rerr.add(path+".slots", fmt.Sprintf("want %d skaters, got %d", len(want), len(ld.Slots)))
		}
		used := make(map[PlayerID]bool, len(ld.Slots))
		for _, pos := range want {
			id, ok := ld.Slots[pos]
			if !ok {
				rerr.add(path+".slots", fmt.Sprintf("missing %s", pos))
				continue
			}
			if _, ok := players[id]; !ok {
				rerr.add(path+".slots."+string(pos), fmt.Sprintf("unknown player %q", id))
				continue
			}
			if used[id] {
				rerr.add(path+".slots."+string(pos), fmt.Sprintf("player %q appears twice", id))
			}
			used[id] = true
			if ld.Number.IsRegular() {
				inRegular[id] = true
			}
		}
		for pos := range ld.Slots {
			if !pos.IsSkater() {
				rerr.add(path+".slots", fmt.Sprintf("unknown position %q", pos))
			}
		}
	}
	for _, n := range lineNumbers {
		if !seen[n] {
			rerr.add("lines", fmt.Sprintf("missing line %q", n))
		}
	}
	for _, p := range d.Players {
		if !inRegular[p.ID] {
			rerr.add("players", fmt.Sprintf("%q is not in any regular line", p.ID))
		}
	}
	return rerr.orNil()
}

// fieldPath trims the struct name off a validator namespace and lowercases the first letter of
// each segment: "TeamDescriptor.Players[3].Morale" becomes "players[3].morale".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "eq":
		return "must be " + fe.Param()
	}
	return "failed " + fe.Tag()
}

// buildTeam turns a validated descriptor into game state and computes teamwork for every line.
func buildTeam(side Side, d TeamDescriptor) (*Team, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	t := &Team{
		Side:         side,
		Name:         d.Name,
		Lines:        make(map[LineNumber]*Line, len(d.Lines)),
		Players:      make(map[PlayerID]*FieldPlayer, len(d.Players)),
		Goalies:      make(map[GoalieSlot]*Goalie, 2),
		ActiveLine:   FirstLine,
		ActiveGoalie: MainGoalie,
	}
	for _, p := range d.Players {
		cp := p
		t.Players[p.ID] = &cp
	}
	main, sub := d.Goalies.Main, d.Goalies.Substitute
	t.Goalies[MainGoalie] = &main
	t.Goalies[SubstituteGoalie] = &sub
	for _, ld := range d.Lines {
		l := newLine(ld)
		t.computeTeamwork(l)
		t.Lines[l.Number] = l
	}
	return t, nil
}
