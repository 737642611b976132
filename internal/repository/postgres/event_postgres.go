package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/hockey-match-engine/internal/model"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
)

type eventRepository struct{ pool *pgxpool.Pool }

func NewEventRepository(pool *pgxpool.Pool) repository.EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Append(ctx context.Context, e model.MatchEvent) (model.MatchEvent, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.MatchEvent{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO match_events (match_id, turn, actions, zone, payload)
		 VALUES ($1::uuid, $2, $3, $4, $5)
		 RETURNING created_at`,
		e.MatchID, e.Turn, e.Actions, e.Zone, []byte(e.Payload),
	)
	if err := row.Scan(&e.CreatedAt); err != nil {
		return model.MatchEvent{}, repository.MapPgError(err)
	}
	return e, nil
}

func (r *eventRepository) ListByMatch(ctx context.Context, matchID string, p repository.Page) (repository.PageResult[model.MatchEvent], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.MatchEvent]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT match_id::text, turn, actions, zone, payload, created_at, COUNT(*) OVER() AS total
		 FROM match_events
		 WHERE match_id = $1::uuid
		 ORDER BY turn
		 LIMIT $2 OFFSET $3`,
		matchID, limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.MatchEvent]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.MatchEvent]{Items: make([]model.MatchEvent, 0, limit)}
	for rows.Next() {
		var (
			it      model.MatchEvent
			payload []byte
			total   int
		)
		if err := rows.Scan(&it.MatchID, &it.Turn, &it.Actions, &it.Zone, &payload, &it.CreatedAt, &total); err != nil {
			return repository.PageResult[model.MatchEvent]{}, repository.MapPgError(err)
		}
		it.Payload = payload
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.MatchEvent]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.EventRepository = (*eventRepository)(nil)
