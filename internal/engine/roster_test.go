package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasField(rerr *RosterError, field, fragment string) bool {
	for _, f := range rerr.Fields {
		if f.Field == field && strings.Contains(f.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidate_SampleIsValid(t *testing.T) {
	for v := uint64(0); v < 5; v++ {
		require.NoError(t, SampleTeam("t", v).Validate())
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(d *TeamDescriptor)
		field  string
		frag   string
	}{
		{
			name:   "stat out of range",
			mutate: func(d *TeamDescriptor) { d.Players[0].Morale = 120 },
			field:  "players[0].morale",
			frag:   "<= 99",
		},
		{
			name:   "unknown role",
			mutate: func(d *TeamDescriptor) { d.Players[1].Role = "sniper" },
			field:  "players[1].role",
			frag:   "one of",
		},
		{
			name:   "duplicate id",
			mutate: func(d *TeamDescriptor) { d.Players[2].ID = d.Players[1].ID },
			field:  "players[2].id",
			frag:   "duplicate",
		},
		{
			name:   "penalty kill with five",
			mutate: func(d *TeamDescriptor) { d.Lines[6].Slots[RightWing] = d.Lines[0].Slots[RightWing] },
			field:  "lines[6].slots",
			frag:   "want 4",
		},
		{
			name:   "missing line",
			mutate: func(d *TeamDescriptor) { d.Lines[7].Number = PenaltyKill1 },
			field:  "lines[7].number",
			frag:   "twice",
		},
		{
			name:   "unknown slot player",
			mutate: func(d *TeamDescriptor) { d.Lines[1].Slots[Center] = "ghost" },
			field:  "lines[1].slots.C",
			frag:   "unknown player",
		},
		{
			name:   "goalie doubles as skater",
			mutate: func(d *TeamDescriptor) { d.Goalies.Main.ID = d.Players[0].ID },
			field:  "goalies",
			frag:   "also a field player",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := SampleTeam("t", 1)
			tc.mutate(&d)
			err := d.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRoster))
			assert.True(t, errors.Is(err, ErrStructural))
			var rerr *RosterError
			require.True(t, errors.As(err, &rerr))
			assert.True(t, hasField(rerr, tc.field, tc.frag), "want %s ~ %q in %v", tc.field, tc.frag, rerr.Fields)
		})
	}
}

func TestValidate_PlayerOutsideRegularLines(t *testing.T) {
	d := SampleTeam("t", 1)
	extra := d.Players[0]
	extra.ID = "t-extra"
	d.Players = append(d.Players, extra)
	d.Lines[4].Slots[Center] = "t-extra"

	err := d.Validate()
	var rerr *RosterError
	require.True(t, errors.As(err, &rerr))
	assert.True(t, hasField(rerr, "players", "not in any regular line"))
}

func TestValidate_MissingLineCount(t *testing.T) {
	d := SampleTeam("t", 1)
	d.Lines = d.Lines[:7]
	err := d.Validate()
	var rerr *RosterError
	require.True(t, errors.As(err, &rerr))
	assert.True(t, hasField(rerr, "lines", "missing line"))
	assert.True(t, hasField(rerr, "lines", "length 8"))
}

func TestNew_RejectsInvalidRoster(t *testing.T) {
	bad := SampleTeam("away", 2)
	bad.Goalies.Substitute.Morale = -1
	_, err := New(SampleTeam("home", 1), bad, nil, 1)
	require.ErrorIs(t, err, ErrInvalidRoster)
}

func TestNew_CopiesRoster(t *testing.T) {
	home := SampleTeam("home", 1)
	g, err := New(home, SampleTeam("away", 2), nil, 1)
	require.NoError(t, err)

	home.Players[0].Morale = 0
	home.Lines[0].Slots[Center] = "nobody"
	assert.NotZero(t, g.user1.Players[home.Players[0].ID].Morale)
	assert.Equal(t, PlayerID("home-C1"), g.user1.Lines[FirstLine].Slots[Center])
}
