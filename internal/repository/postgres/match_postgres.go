package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/hockey-match-engine/internal/model"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
)

type matchRepository struct{ pool *pgxpool.Pool }

func NewMatchRepository(pool *pgxpool.Pool) repository.MatchRepository {
	return &matchRepository{pool: pool}
}

const matchColumns = `id::text, seed, home, away, reward, status, turn, home_score, away_score, winner, created_at, updated_at`

func (r *matchRepository) Create(ctx context.Context, m model.Match) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	home, err := json.Marshal(m.Home)
	if err != nil {
		return model.Match{}, fmt.Errorf("encode home roster: %w", err)
	}
	away, err := json.Marshal(m.Away)
	if err != nil {
		return model.Match{}, fmt.Errorf("encode away roster: %w", err)
	}
	if m.Status == "" {
		m.Status = model.MatchInProgress
	}

	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO matches (id, seed, home, away, reward, status, turn, home_score, away_score, winner)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+matchColumns,
		m.ID, int64(m.Seed), home, away, nullJSON(m.Reward), string(m.Status), m.Turn, m.HomeScore, m.AwayScore, m.Winner,
	)
	return scanMatch(row)
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1::uuid`, id)
	m, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Match{}, repository.ErrNotFound
	}
	return m, err
}

func (r *matchRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.MatchSummary], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.MatchSummary]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id::text, home->>'name', away->>'name', status, turn, home_score, away_score, winner, created_at,
		        COUNT(*) OVER() AS total
		 FROM matches
		 ORDER BY created_at DESC, id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.MatchSummary]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.MatchSummary]{Items: make([]model.MatchSummary, 0, limit)}
	for rows.Next() {
		var (
			it     model.MatchSummary
			status string
			total  int
		)
		if err := rows.Scan(&it.ID, &it.HomeName, &it.AwayName, &status, &it.Turn, &it.HomeScore, &it.AwayScore, &it.Winner, &it.CreatedAt, &total); err != nil {
			return repository.PageResult[model.MatchSummary]{}, repository.MapPgError(err)
		}
		it.Status = model.MatchStatus(status)
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.MatchSummary]{}, repository.MapPgError(err)
	}
	return res, nil
}

func (r *matchRepository) UpdateProgress(ctx context.Context, id string, p model.MatchProgress) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		`UPDATE matches
		 SET status = $2, turn = $3, home_score = $4, away_score = $5, winner = $6, updated_at = now()
		 WHERE id = $1::uuid AND turn < $3`,
		id, string(p.Status), p.Turn, p.HomeScore, p.AwayScore, p.Winner,
	)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// nothing updated: either the row is gone or another writer got ahead
	var exists bool
	if err := exec.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM matches WHERE id = $1::uuid)`, id).Scan(&exists); err != nil {
		return repository.MapPgError(err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

func scanMatch(row pgx.Row) (model.Match, error) {
	var (
		out        model.Match
		seed       int64
		home, away []byte
		reward     []byte
		status     string
	)
	if err := row.Scan(&out.ID, &seed, &home, &away, &reward, &status, &out.Turn, &out.HomeScore, &out.AwayScore, &out.Winner, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, err
		}
		return model.Match{}, repository.MapPgError(err)
	}
	if err := json.Unmarshal(home, &out.Home); err != nil {
		return model.Match{}, fmt.Errorf("decode home roster: %w", err)
	}
	if err := json.Unmarshal(away, &out.Away); err != nil {
		return model.Match{}, fmt.Errorf("decode away roster: %w", err)
	}
	out.Seed = uint64(seed)
	out.Status = model.MatchStatus(status)
	if len(reward) > 0 {
		out.Reward = json.RawMessage(reward)
	}
	return out, nil
}

// nullJSON stores an absent reward as SQL NULL rather than JSON null.
func nullJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

var _ repository.MatchRepository = (*matchRepository)(nil)
