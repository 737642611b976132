// Package service orchestrates matches: it owns the live engine
// instances, serialises access per match, and persists every committed
// step before handing it to the event feed.
package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/maxviazov/hockey-match-engine/internal/engine"
	"github.com/maxviazov/hockey-match-engine/internal/model"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// EventPublisher receives every event after it has been stored.
type EventPublisher interface {
	PublishEvent(ctx context.Context, e model.MatchEvent) error
}

// CreateMatchInput is everything needed to start a match. A nil Seed
// asks the service to draw one.
type CreateMatchInput struct {
	Home   engine.TeamDescriptor `json:"home"`
	Away   engine.TeamDescriptor `json:"away"`
	Reward json.RawMessage       `json:"reward,omitempty"`
	Seed   *uint64               `json:"seed,omitempty"`
}

// MatchState is a match's identity plus the engine's current view.
type MatchState struct {
	ID     string          `json:"id"`
	Seed   uint64          `json:"seed"`
	Reward json.RawMessage `json:"reward,omitempty"`
	State  engine.View     `json:"state"`
}

// SimulateResult reports a multi-step run.
type SimulateResult struct {
	Steps    int        `json:"steps"`
	Finished bool       `json:"finished"`
	Match    MatchState `json:"match"`
}

// MatchService defines match-oriented use cases.
type MatchService interface {
	CreateMatch(ctx context.Context, in CreateMatchInput) (MatchState, error)
	GetMatch(ctx context.Context, id string) (MatchState, error)
	ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.MatchSummary], error)
	Step(ctx context.Context, id string) (engine.Event, error)
	// Simulate steps until the match ends or maxTurns steps ran. maxTurns
	// <= 0 or above the configured ceiling uses the ceiling.
	Simulate(ctx context.Context, id string, maxTurns int) (SimulateResult, error)
	ListEvents(ctx context.Context, id string, page repository.Page) (repository.PageResult[model.MatchEvent], error)
	ApplyCommand(ctx context.Context, id string, cmd engine.Command) (MatchState, error)
}
