// Package model contains the persisted shapes shared by the service and
// repository layers. Behaviour lives in internal/engine.
package model

import (
	"encoding/json"
	"time"

	"github.com/maxviazov/hockey-match-engine/internal/engine"
)

type MatchStatus string

const (
	MatchInProgress MatchStatus = "in_progress"
	MatchFinished   MatchStatus = "finished"
)

// Match is a created game: its inputs (rosters, reward, seed) plus the
// progress columns updated after every committed step.
type Match struct {
	ID        string                `json:"id"`
	Seed      uint64                `json:"seed"`
	Home      engine.TeamDescriptor `json:"home"`
	Away      engine.TeamDescriptor `json:"away"`
	Reward    json.RawMessage       `json:"reward,omitempty"`
	Status    MatchStatus           `json:"status"`
	Turn      int                   `json:"turn"`
	HomeScore int                   `json:"home_score"`
	AwayScore int                   `json:"away_score"`
	Winner    *int                  `json:"winner,omitempty"` // 1 = home, 2 = away
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// MatchSummary is the list projection; rosters are left out.
type MatchSummary struct {
	ID        string      `json:"id"`
	HomeName  string      `json:"home_name"`
	AwayName  string      `json:"away_name"`
	Status    MatchStatus `json:"status"`
	Turn      int         `json:"turn"`
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
	Winner    *int        `json:"winner,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// MatchProgress is what changes on a match row after a step.
type MatchProgress struct {
	Status    MatchStatus
	Turn      int
	HomeScore int
	AwayScore int
	Winner    *int
}

// MatchEvent is one step's event as stored. Payload is the full
// engine.Event JSON; Actions is denormalised for filtering.
type MatchEvent struct {
	MatchID   string          `json:"match_id"`
	Turn      int             `json:"turn"`
	Actions   []string        `json:"actions"`
	Zone      int             `json:"zone"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// CoachCommand is a command applied after step Turn and before Turn+1.
type CoachCommand struct {
	ID        int64          `json:"id"`
	MatchID   string         `json:"match_id"`
	Turn      int            `json:"turn"`
	Command   engine.Command `json:"command"`
	CreatedAt time.Time      `json:"created_at"`
}
