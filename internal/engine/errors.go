package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every error returned by the engine unwraps to exactly one of them.
var (
	// ErrStructural marks programmer errors: malformed rosters, unknown lines or positions.
	ErrStructural = errors.New("structural error")
	// ErrRuleViolation marks commands that are well formed but not allowed in the current state.
	ErrRuleViolation = errors.New("rule violation")
	// ErrOracleRange marks a random draw with an empty range; the turn is discarded.
	ErrOracleRange = errors.New("oracle range exhausted")
)

var (
	ErrInvalidRoster   = fmt.Errorf("%w: invalid roster", ErrStructural)
	ErrUnknownLine     = fmt.Errorf("%w: unknown line", ErrStructural)
	ErrUnknownPosition = fmt.Errorf("%w: unknown position", ErrStructural)
	ErrUnknownSide     = fmt.Errorf("%w: unknown side", ErrStructural)
	ErrInvalidValue    = fmt.Errorf("%w: invalid value", ErrStructural)

	ErrGameFinished = fmt.Errorf("%w: game finished", ErrRuleViolation)
	ErrAlreadyUsed  = fmt.Errorf("%w: already used", ErrRuleViolation)
	ErrGoalieState  = fmt.Errorf("%w: goalie already in requested state", ErrRuleViolation)
)

// FieldError points at one offending field of a team descriptor.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RosterError aggregates every problem found in a team descriptor.
type RosterError struct {
	Team   string
	Fields []FieldError
}

func (e *RosterError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s (%s): %s", ErrInvalidRoster.Error(), e.Team, strings.Join(parts, "; "))
}

func (e *RosterError) Unwrap() error { return ErrInvalidRoster }

func (e *RosterError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *RosterError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
