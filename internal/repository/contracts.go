package repository

import (
	"context"

	"github.com/maxviazov/hockey-match-engine/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// Repositories called with the ctx handed to fn join the same transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// MatchRepository stores match inputs and their progress columns.
type MatchRepository interface {
	Create(ctx context.Context, m model.Match) (model.Match, error)
	GetByID(ctx context.Context, id string) (model.Match, error)
	List(ctx context.Context, p Page) (PageResult[model.MatchSummary], error)
	// UpdateProgress returns ErrNotFound when the match does not exist and
	// ErrConflict when the stored turn is not behind p.Turn.
	UpdateProgress(ctx context.Context, id string, p model.MatchProgress) error
}

// EventRepository is the append-only per-match event log.
type EventRepository interface {
	// Append returns ErrAlreadyExists if the turn is already stored.
	Append(ctx context.Context, e model.MatchEvent) (model.MatchEvent, error)
	ListByMatch(ctx context.Context, matchID string, p Page) (PageResult[model.MatchEvent], error)
}

// CommandRepository keeps coach commands so a match can be replayed.
type CommandRepository interface {
	Append(ctx context.Context, c model.CoachCommand) (model.CoachCommand, error)
	// ListByMatch returns every command in application order.
	ListByMatch(ctx context.Context, matchID string) ([]model.CoachCommand, error)
}
