// Package contract holds behaviour suites every repository
// implementation must pass. Each backend wires them to its own factories.
package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/maxviazov/hockey-match-engine/internal/engine"
	"github.com/maxviazov/hockey-match-engine/internal/model"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
)

type MatchFactory func(t *testing.T) (repository.MatchRepository, func())

// MatchSeeder stores a fresh match and returns its id.
type MatchSeeder func(ctx context.Context) (string, error)

type EventFactory func(t *testing.T) (repo repository.EventRepository, mkMatch MatchSeeder, cleanup func())

type CommandFactory func(t *testing.T) (repo repository.CommandRepository, mkMatch MatchSeeder, cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, matches repository.MatchRepository, events repository.EventRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

// NewMatch builds a valid match row on the sample rosters.
func NewMatch(seed uint64) model.Match {
	return model.Match{
		ID:     uuid.NewString(),
		Seed:   seed,
		Home:   engine.SampleTeam("home", seed),
		Away:   engine.SampleTeam("away", seed+1),
		Reward: json.RawMessage(`{"prize":10}`),
		Status: model.MatchInProgress,
	}
}

// Seeder returns a MatchSeeder backed by repo.
func Seeder(repo repository.MatchRepository) MatchSeeder {
	return func(ctx context.Context) (string, error) {
		m, err := repo.Create(ctx, NewMatch(1))
		if err != nil {
			return "", err
		}
		return m.ID, nil
	}
}

func RunMatchRepositoryContract(t *testing.T, makeRepo MatchFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		in := NewMatch(1 << 63)
		created, err := repo.Create(ctx, in)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != in.ID || got.Seed != in.Seed || got.Status != model.MatchInProgress {
			t.Fatalf("mismatch: id=%s seed=%d status=%s", got.ID, got.Seed, got.Status)
		}
		if got.Home.Name != "home" || len(got.Away.Players) != len(in.Away.Players) {
			t.Fatalf("rosters not round-tripped: %q %d", got.Home.Name, len(got.Away.Players))
		}
		if got.CreatedAt.IsZero() {
			t.Fatalf("created_at not set")
		}
		var reward map[string]int
		if err := json.Unmarshal(got.Reward, &reward); err != nil || reward["prize"] != 10 {
			t.Fatalf("reward not round-tripped: %s", got.Reward)
		}
	})

	t.Run("create_duplicate", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m := NewMatch(2)
		if _, err := repo.Create(ctx, m); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if _, err := repo.Create(ctx, m); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
			if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, repository.ErrNotFound) {
				t.Fatalf("%s: expected ErrNotFound, got %v", id, err)
			}
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if _, err := repo.Create(ctx, NewMatch(uint64(i))); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if res.Items[0].HomeName != "home" || res.Items[0].AwayName != "away" {
			t.Fatalf("summary names: %+v", res.Items[0])
		}
		last, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 6})
		if err != nil {
			t.Fatalf("list last: %v", err)
		}
		if len(last.Items) != 1 {
			t.Fatalf("expected 1 item on last page, got %d", len(last.Items))
		}
	})

	t.Run("update_progress", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m, err := repo.Create(ctx, NewMatch(3))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		winner := 2
		p := model.MatchProgress{Status: model.MatchFinished, Turn: 80, HomeScore: 1, AwayScore: 3, Winner: &winner}
		if err := repo.UpdateProgress(ctx, m.ID, p); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, err := repo.GetByID(ctx, m.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != model.MatchFinished || got.Turn != 80 || got.AwayScore != 3 || got.Winner == nil || *got.Winner != 2 {
			t.Fatalf("progress not stored: %+v", got)
		}
		if err := repo.UpdateProgress(ctx, m.ID, p); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict on stale turn, got %v", err)
		}
		if err := repo.UpdateProgress(ctx, uuid.NewString(), p); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunEventRepositoryContract(t *testing.T, makeRepo EventFactory) {
	t.Helper()

	t.Run("append_and_list_in_turn_order", func(t *testing.T) {
		repo, mkMatch, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := mkMatch(ctx)
		if err != nil {
			t.Fatalf("seed match: %v", err)
		}
		for _, turn := range []int{2, 1, 3} {
			e := model.MatchEvent{
				MatchID: id,
				Turn:    turn,
				Actions: []string{"Move", "Hit"},
				Zone:    2,
				Payload: json.RawMessage(fmt.Sprintf(`{"turn":%d}`, turn)),
			}
			if _, err := repo.Append(ctx, e); err != nil {
				t.Fatalf("append %d: %v", turn, err)
			}
		}
		res, err := repo.ListByMatch(ctx, id, repository.Page{Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 3 || len(res.Items) != 2 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if res.Items[0].Turn != 1 || res.Items[1].Turn != 2 {
			t.Fatalf("not ordered by turn: %d %d", res.Items[0].Turn, res.Items[1].Turn)
		}
		if len(res.Items[0].Actions) != 2 || res.Items[0].Actions[1] != "Hit" {
			t.Fatalf("actions not stored: %v", res.Items[0].Actions)
		}
		var payload map[string]int
		if err := json.Unmarshal(res.Items[1].Payload, &payload); err != nil || payload["turn"] != 2 {
			t.Fatalf("payload not stored: %s", res.Items[1].Payload)
		}
	})

	t.Run("duplicate_turn", func(t *testing.T) {
		repo, mkMatch, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := mkMatch(ctx)
		if err != nil {
			t.Fatalf("seed match: %v", err)
		}
		e := model.MatchEvent{MatchID: id, Turn: 1, Actions: []string{"StartGame"}, Zone: 2, Payload: json.RawMessage(`{}`)}
		if _, err := repo.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
		if _, err := repo.Append(ctx, e); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("unknown_match", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		e := model.MatchEvent{MatchID: uuid.NewString(), Turn: 1, Actions: []string{"StartGame"}, Zone: 2, Payload: json.RawMessage(`{}`)}
		if _, err := repo.Append(context.Background(), e); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunCommandRepositoryContract(t *testing.T, makeRepo CommandFactory) {
	t.Helper()

	t.Run("append_and_list", func(t *testing.T) {
		repo, mkMatch, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := mkMatch(ctx)
		if err != nil {
			t.Fatalf("seed match: %v", err)
		}
		cmds := []engine.Command{
			{Kind: engine.CmdChangeTactic, Side: engine.User1, Line: engine.FirstLine, Tactic: engine.Aggressive},
			{Kind: engine.CmdTakeTimeout, Side: engine.User2},
		}
		for i, c := range cmds {
			out, err := repo.Append(ctx, model.CoachCommand{MatchID: id, Turn: 10 * i, Command: c})
			if err != nil {
				t.Fatalf("append: %v", err)
			}
			if out.ID == 0 {
				t.Fatalf("id not assigned")
			}
		}
		got, err := repo.ListByMatch(ctx, id)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 commands, got %d", len(got))
		}
		if got[0].Command != cmds[0] || got[1].Command != cmds[1] || got[1].Turn != 10 {
			t.Fatalf("commands not round-tripped: %+v", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		repo, mkMatch, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		id, err := mkMatch(context.Background())
		if err != nil {
			t.Fatalf("seed match: %v", err)
		}
		got, err := repo.ListByMatch(context.Background(), id)
		if err != nil || len(got) != 0 {
			t.Fatalf("expected no commands, got %v %v", got, err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, matches, events, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m, err := matches.Create(ctx, NewMatch(5))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		err = tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := events.Append(ctx, model.MatchEvent{MatchID: m.ID, Turn: 1, Actions: []string{"StartGame"}, Zone: 2, Payload: json.RawMessage(`{}`)}); err != nil {
				return err
			}
			return matches.UpdateProgress(ctx, m.ID, model.MatchProgress{Status: model.MatchInProgress, Turn: 1})
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		got, err := matches.GetByID(ctx, m.ID)
		if err != nil || got.Turn != 1 {
			t.Fatalf("expected committed progress, got turn=%d err=%v", got.Turn, err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, matches, events, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m, err := matches.Create(ctx, NewMatch(6))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		errMarker := errors.New("boom")
		err = tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := events.Append(ctx, model.MatchEvent{MatchID: m.ID, Turn: 1, Actions: []string{"StartGame"}, Zone: 2, Payload: json.RawMessage(`{}`)}); err != nil {
				return err
			}
			if err := matches.UpdateProgress(ctx, m.ID, model.MatchProgress{Status: model.MatchInProgress, Turn: 1}); err != nil {
				return err
			}
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		res, err := events.ListByMatch(ctx, m.ID, repository.Page{})
		if err != nil || res.Total != 0 {
			t.Fatalf("expected no events after rollback, got total=%d err=%v", res.Total, err)
		}
		got, err := matches.GetByID(ctx, m.ID)
		if err != nil || got.Turn != 0 {
			t.Fatalf("expected progress rolled back, got turn=%d err=%v", got.Turn, err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
