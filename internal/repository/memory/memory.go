// Package memory is an in-process implementation of the repository
// contracts. cmd/simulate and the service and handler tests run on it.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/hockey-match-engine/internal/model"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
)

// Store holds every table behind one mutex. Transactions are serialised
// on txMu and roll back by restoring a snapshot; writes outside a
// transaction also take txMu so a rollback never drops them.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	matches  map[string]model.Match
	events   map[string][]model.MatchEvent
	commands map[string][]model.CoachCommand
	nextCmd  int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		matches:  map[string]model.Match{},
		events:   map[string][]model.MatchEvent{},
		commands: map[string][]model.CoachCommand{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Matches() repository.MatchRepository { return matchRepo{s} }
func (s *Store) Events() repository.EventRepository { return eventRepo{s} }
func (s *Store) Commands() repository.CommandRepository { return commandRepo{s} }
func (s *Store) TxManager() repository.TxManager { return txManager{s} }
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write runs fn under the data lock, waiting for any open transaction
// unless ctx belongs to it.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

type snapshot struct {
	matches  map[string]model.Match
	events   map[string][]model.MatchEvent
	commands map[string][]model.CoachCommand
	nextCmd  int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		matches:  make(map[string]model.Match, len(s.matches)),
		events:   make(map[string][]model.MatchEvent, len(s.events)),
		commands: make(map[string][]model.CoachCommand, len(s.commands)),
		nextCmd:  s.nextCmd,
	}
	for k, v := range s.matches {
		snap.matches[k] = v
	}
	for k, v := range s.events {
		snap.events[k] = append([]model.MatchEvent(nil), v...)
	}
	for k, v := range s.commands {
		snap.commands[k] = append([]model.CoachCommand(nil), v...)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches, s.events, s.commands, s.nextCmd = snap.matches, snap.events, snap.commands, snap.nextCmd
}

type txManager struct{ s *Store }

func (m txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

// parseID mirrors Postgres: a malformed uuid never matches a row.
func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", repository.ErrNotFound
	}
	return u.String(), nil
}

// cloneMatch deep-copies the rosters so callers cannot alias stored state.
func cloneMatch(m model.Match) (model.Match, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return model.Match{}, fmt.Errorf("copy match: %w", err)
	}
	var out model.Match
	if err := json.Unmarshal(b, &out); err != nil {
		return model.Match{}, fmt.Errorf("copy match: %w", err)
	}
	return out, nil
}

type matchRepo struct{ s *Store }

func (r matchRepo) Create(ctx context.Context, m model.Match) (model.Match, error) {
	id, err := parseID(m.ID)
	if err != nil {
		return model.Match{}, err
	}
	m.ID = id
	if m.Status == "" {
		m.Status = model.MatchInProgress
	}
	stored, err := cloneMatch(m)
	if err != nil {
		return model.Match{}, err
	}
	err = r.s.write(ctx, func() error {
		if _, ok := r.s.matches[id]; ok {
			return repository.ErrAlreadyExists
		}
		now := r.s.now()
		stored.CreatedAt, stored.UpdatedAt = now, now
		r.s.matches[id] = stored
		return nil
	})
	if err != nil {
		return model.Match{}, err
	}
	return cloneMatch(stored)
}

func (r matchRepo) GetByID(ctx context.Context, id string) (model.Match, error) {
	key, err := parseID(id)
	if err != nil {
		return model.Match{}, err
	}
	var m model.Match
	err = r.s.read(ctx, func() error {
		var ok bool
		if m, ok = r.s.matches[key]; !ok {
			return repository.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return model.Match{}, err
	}
	return cloneMatch(m)
}

func (r matchRepo) List(ctx context.Context, p repository.Page) (repository.PageResult[model.MatchSummary], error) {
	var all []model.MatchSummary
	err := r.s.read(ctx, func() error {
		for _, m := range r.s.matches {
			all = append(all, model.MatchSummary{
				ID:        m.ID,
				HomeName:  m.Home.Name,
				AwayName:  m.Away.Name,
				Status:    m.Status,
				Turn:      m.Turn,
				HomeScore: m.HomeScore,
				AwayScore: m.AwayScore,
				Winner:    m.Winner,
				CreatedAt: m.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return repository.PageResult[model.MatchSummary]{}, err
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return page(all, p), nil
}

func (r matchRepo) UpdateProgress(ctx context.Context, id string, p model.MatchProgress) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}
	return r.s.write(ctx, func() error {
		m, ok := r.s.matches[key]
		if !ok {
			return repository.ErrNotFound
		}
		if m.Turn >= p.Turn {
			return repository.ErrConflict
		}
		m.Status, m.Turn, m.HomeScore, m.AwayScore = p.Status, p.Turn, p.HomeScore, p.AwayScore
		m.Winner = nil
		if p.Winner != nil {
			w := *p.Winner
			m.Winner = &w
		}
		m.UpdatedAt = r.s.now()
		r.s.matches[key] = m
		return nil
	})
}

type eventRepo struct{ s *Store }

func (r eventRepo) Append(ctx context.Context, e model.MatchEvent) (model.MatchEvent, error) {
	key, err := parseID(e.MatchID)
	if err != nil {
		return model.MatchEvent{}, err
	}
	e.MatchID = key
	e.Actions = append([]string(nil), e.Actions...)
	e.Payload = append([]byte(nil), e.Payload...)
	err = r.s.write(ctx, func() error {
		if _, ok := r.s.matches[key]; !ok {
			// foreign key
			return repository.ErrConflict
		}
		for _, x := range r.s.events[key] {
			if x.Turn == e.Turn {
				return repository.ErrAlreadyExists
			}
		}
		e.CreatedAt = r.s.now()
		r.s.events[key] = append(r.s.events[key], e)
		return nil
	})
	if err != nil {
		return model.MatchEvent{}, err
	}
	return e, nil
}

func (r eventRepo) ListByMatch(ctx context.Context, matchID string, p repository.Page) (repository.PageResult[model.MatchEvent], error) {
	key, err := parseID(matchID)
	if err != nil {
		return repository.PageResult[model.MatchEvent]{Items: []model.MatchEvent{}}, nil
	}
	var all []model.MatchEvent
	err = r.s.read(ctx, func() error {
		all = append(all, r.s.events[key]...)
		return nil
	})
	if err != nil {
		return repository.PageResult[model.MatchEvent]{}, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Turn < all[j].Turn })
	return page(all, p), nil
}

type commandRepo struct{ s *Store }

func (r commandRepo) Append(ctx context.Context, c model.CoachCommand) (model.CoachCommand, error) {
	key, err := parseID(c.MatchID)
	if err != nil {
		return model.CoachCommand{}, err
	}
	c.MatchID = key
	err = r.s.write(ctx, func() error {
		if _, ok := r.s.matches[key]; !ok {
			return repository.ErrConflict
		}
		r.s.nextCmd++
		c.ID = r.s.nextCmd
		c.CreatedAt = r.s.now()
		r.s.commands[key] = append(r.s.commands[key], c)
		return nil
	})
	if err != nil {
		return model.CoachCommand{}, err
	}
	return c, nil
}

func (r commandRepo) ListByMatch(ctx context.Context, matchID string) ([]model.CoachCommand, error) {
	key, err := parseID(matchID)
	if err != nil {
		return nil, nil
	}
	var out []model.CoachCommand
	err = r.s.read(ctx, func() error {
		out = append(out, r.s.commands[key]...)
		return nil
	})
	return out, err
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// page applies the same limit/offset rules as the Postgres repositories.
func page[T any](all []T, p repository.Page) repository.PageResult[T] {
	limit, offset := p.Limit, p.Offset
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	res := repository.PageResult[T]{Items: []T{}, Total: len(all)}
	if offset >= len(all) {
		return res
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	res.Items = append(res.Items, all[offset:end]...)
	return res
}

var (
	_ repository.MatchRepository   = matchRepo{}
	_ repository.EventRepository   = eventRepo{}
	_ repository.CommandRepository = commandRepo{}
	_ repository.TxManager         = txManager{}
	_ repository.Pinger            = (*Store)(nil)
)
