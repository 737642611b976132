package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/maxviazov/hockey-match-engine/internal/engine"
	"github.com/maxviazov/hockey-match-engine/internal/model"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
	"github.com/rs/zerolog"
)

type matchService struct {
	matches  repository.MatchRepository
	events   repository.EventRepository
	commands repository.CommandRepository
	tx       repository.TxManager
	pub      EventPublisher
	live     *registry
	maxTurns int
	log      zerolog.Logger
}

// NewMatchService wires the match use cases. pub may be nil when the
// event feed is disabled; maxTurns caps a single Simulate call.
func NewMatchService(
	matches repository.MatchRepository,
	events repository.EventRepository,
	commands repository.CommandRepository,
	tx repository.TxManager,
	pub EventPublisher,
	maxTurns int,
	logger zerolog.Logger,
) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	if maxTurns <= 0 {
		maxTurns = 500
	}
	return &matchService{
		matches:  matches,
		events:   events,
		commands: commands,
		tx:       tx,
		pub:      pub,
		live:     newRegistry(),
		maxTurns: maxTurns,
		log:      l,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, in CreateMatchInput) (MatchState, error) {
	if ferrs := validateCreate(in); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("match validation failed")
		return MatchState{}, newInvalidInput(ferrs)
	}

	var seed uint64
	if in.Seed != nil {
		seed = *in.Seed
	} else {
		var err error
		if seed, err = newSeed(); err != nil {
			return MatchState{}, err
		}
	}

	game, err := engine.New(in.Home, in.Away, in.Reward, seed)
	if err != nil {
		// Validate passed, so anything here is a bug in the roster checks.
		return MatchState{}, fmt.Errorf("build engine: %w", err)
	}

	created, err := s.matches.Create(ctx, model.Match{
		ID:     uuid.NewString(),
		Seed:   seed,
		Home:   in.Home,
		Away:   in.Away,
		Reward: in.Reward,
		Status: model.MatchInProgress,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create match failed")
		return MatchState{}, err
	}

	m := s.live.entry(created.ID)
	m.mu.Lock()
	m.game, m.seed, m.reward = game, seed, created.Reward
	state := m.state(created.ID)
	m.mu.Unlock()

	s.log.Info().
		Str("match_id", created.ID).
		Uint64("seed", seed).
		Str("home", in.Home.Name).
		Str("away", in.Away.Name).
		Msg("match created")
	return state, nil
}

func (s *matchService) GetMatch(ctx context.Context, id string) (MatchState, error) {
	var out MatchState
	err := s.withMatch(ctx, id, func(key string, m *liveMatch) error {
		out = m.state(key)
		return nil
	})
	return out, err
}

func (s *matchService) ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.MatchSummary], error) {
	p := normalizePage(page)
	res, err := s.matches.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list matches failed")
		return repository.PageResult[model.MatchSummary]{}, err
	}
	return res, nil
}

func (s *matchService) Step(ctx context.Context, id string) (engine.Event, error) {
	var ev engine.Event
	err := s.withMatch(ctx, id, func(key string, m *liveMatch) error {
		var err error
		ev, err = s.step(ctx, key, m)
		return err
	})
	return ev, err
}

func (s *matchService) Simulate(ctx context.Context, id string, maxTurns int) (SimulateResult, error) {
	if maxTurns <= 0 || maxTurns > s.maxTurns {
		maxTurns = s.maxTurns
	}
	var out SimulateResult
	err := s.withMatch(ctx, id, func(key string, m *liveMatch) error {
		if m.game.Finished() {
			return fmt.Errorf("simulate: %w", engine.ErrGameFinished)
		}
		for out.Steps < maxTurns && !m.game.Finished() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := s.step(ctx, key, m); err != nil {
				return err
			}
			out.Steps++
		}
		out.Finished = m.game.Finished()
		out.Match = m.state(key)
		return nil
	})
	if err != nil {
		return SimulateResult{}, err
	}
	return out, nil
}

func (s *matchService) ListEvents(ctx context.Context, id string, page repository.Page) (repository.PageResult[model.MatchEvent], error) {
	key, err := parseMatchID(id)
	if err != nil {
		return repository.PageResult[model.MatchEvent]{}, err
	}
	p := normalizePage(page)
	res, err := s.events.ListByMatch(ctx, key, p)
	if err != nil {
		s.log.Error().Err(err).Str("match_id", key).Msg("list events failed")
		return repository.PageResult[model.MatchEvent]{}, err
	}
	if res.Total == 0 {
		// an empty log and an unknown match look the same here
		if _, err := s.matches.GetByID(ctx, key); err != nil {
			return repository.PageResult[model.MatchEvent]{}, err
		}
	}
	return res, nil
}

func (s *matchService) ApplyCommand(ctx context.Context, id string, cmd engine.Command) (MatchState, error) {
	var out MatchState
	err := s.withMatch(ctx, id, func(key string, m *liveMatch) error {
		if err := m.game.Apply(cmd); err != nil {
			return err
		}
		_, err := s.commands.Append(ctx, model.CoachCommand{MatchID: key, Turn: m.game.Turn(), Command: cmd})
		if err != nil {
			// the engine already took the command; reload so memory matches storage
			m.evict()
			s.log.Error().Err(err).Str("match_id", key).Str("command", string(cmd.Kind)).Msg("store command failed")
			return err
		}
		s.log.Debug().Str("match_id", key).Str("command", string(cmd.Kind)).Int("side", int(cmd.Side)).Int("turn", m.game.Turn()).Msg("command applied")
		out = m.state(key)
		return nil
	})
	return out, err
}

// step advances the game one turn and stores the event together with the
// new progress. On a storage failure the live game is evicted so the
// next call rebuilds it from what was actually committed.
func (s *matchService) step(ctx context.Context, key string, m *liveMatch) (engine.Event, error) {
	ev, err := m.game.Step()
	if err != nil {
		if !errors.Is(err, engine.ErrGameFinished) {
			s.log.Error().Err(err).Str("match_id", key).Int("turn", m.game.Turn()).Msg("step failed")
		}
		return engine.Event{}, err
	}

	record, err := eventRecord(key, ev)
	if err != nil {
		m.evict()
		return engine.Event{}, err
	}
	progress := progressOf(m.game)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.events.Append(ctx, record); err != nil {
			return err
		}
		return s.matches.UpdateProgress(ctx, key, progress)
	})
	if err != nil {
		m.evict()
		s.log.Error().Err(err).Str("match_id", key).Int("turn", ev.Turn).Msg("persist step failed")
		return engine.Event{}, err
	}

	if s.pub != nil {
		if err := s.pub.PublishEvent(ctx, record); err != nil {
			// the feed is best effort; storage is the source of truth
			s.log.Warn().Err(err).Str("match_id", key).Int("turn", ev.Turn).Msg("publish event failed")
		}
	}

	if progress.Status == model.MatchFinished {
		s.log.Info().
			Str("match_id", key).
			Int("turns", progress.Turn).
			Int("home_score", progress.HomeScore).
			Int("away_score", progress.AwayScore).
			Int("winner", *progress.Winner).
			Msg("match finished")
	}
	return ev, nil
}

// withMatch validates id, locks the live match and loads it if needed.
func (s *matchService) withMatch(ctx context.Context, id string, fn func(key string, m *liveMatch) error) error {
	key, err := parseMatchID(id)
	if err != nil {
		return err
	}
	m := s.live.entry(key)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.game == nil {
		if err := s.load(ctx, key, m); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.live.forget(key, m)
			}
			return err
		}
	}
	return fn(key, m)
}

// load rebuilds a match from storage: same rosters and seed, stored
// commands re-applied at the turn they were issued. The engine is
// deterministic, so this lands on exactly the committed state.
func (s *matchService) load(ctx context.Context, key string, m *liveMatch) error {
	row, err := s.matches.GetByID(ctx, key)
	if err != nil {
		return err
	}
	cmds, err := s.commands.ListByMatch(ctx, key)
	if err != nil {
		return err
	}
	game, err := replay(row, cmds)
	if err != nil {
		s.log.Error().Err(err).Str("match_id", key).Msg("replay failed")
		return err
	}
	m.game, m.seed, m.reward = game, row.Seed, row.Reward
	s.log.Debug().Str("match_id", key).Int("turn", row.Turn).Int("commands", len(cmds)).Msg("match rebuilt")
	return nil
}

func replay(row model.Match, cmds []model.CoachCommand) (*engine.Game, error) {
	game, err := engine.New(row.Home, row.Away, row.Reward, row.Seed)
	if err != nil {
		return nil, fmt.Errorf("rebuild match %s: %w", row.ID, err)
	}
	next := 0
	applyDue := func() error {
		for next < len(cmds) && cmds[next].Turn == game.Turn() {
			if err := game.Apply(cmds[next].Command); err != nil {
				return fmt.Errorf("replay command %d at turn %d: %w", cmds[next].ID, cmds[next].Turn, err)
			}
			next++
		}
		if next < len(cmds) && cmds[next].Turn < game.Turn() {
			return fmt.Errorf("replay command %d: turn %d already passed", cmds[next].ID, cmds[next].Turn)
		}
		return nil
	}
	for game.Turn() < row.Turn {
		if err := applyDue(); err != nil {
			return nil, err
		}
		if _, err := game.Step(); err != nil {
			return nil, fmt.Errorf("replay step %d: %w", game.Turn()+1, err)
		}
	}
	if err := applyDue(); err != nil {
		return nil, err
	}
	if next != len(cmds) {
		return nil, fmt.Errorf("replay: %d commands beyond turn %d", len(cmds)-next, row.Turn)
	}
	return game, nil
}

func eventRecord(matchID string, ev engine.Event) (model.MatchEvent, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return model.MatchEvent{}, fmt.Errorf("encode event %d: %w", ev.Turn, err)
	}
	actions := make([]string, 0, len(ev.Actions))
	for _, a := range ev.Actions {
		actions = append(actions, string(a))
	}
	return model.MatchEvent{
		MatchID: matchID,
		Turn:    ev.Turn,
		Actions: actions,
		Zone:    ev.Zone,
		Payload: payload,
	}, nil
}

func progressOf(g *engine.Game) model.MatchProgress {
	v := g.Query()
	p := model.MatchProgress{
		Status:    model.MatchInProgress,
		Turn:      v.Turn,
		HomeScore: v.User1.Score,
		AwayScore: v.User2.Score,
	}
	if w, ok := g.Winner(); ok {
		side := int(w)
		p.Status = model.MatchFinished
		p.Winner = &side
	}
	return p
}

func (m *liveMatch) state(id string) MatchState {
	return MatchState{
		ID:     id,
		Seed:   m.seed,
		Reward: m.reward,
		State:  m.game.Query(),
	}
}
