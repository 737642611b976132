package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/hockey-match-engine/internal/model"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
)

type commandRepository struct{ pool *pgxpool.Pool }

func NewCommandRepository(pool *pgxpool.Pool) repository.CommandRepository {
	return &commandRepository{pool: pool}
}

func (r *commandRepository) Append(ctx context.Context, c model.CoachCommand) (model.CoachCommand, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.CoachCommand{}, err
	}
	body, err := json.Marshal(c.Command)
	if err != nil {
		return model.CoachCommand{}, fmt.Errorf("encode command: %w", err)
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO coach_commands (match_id, turn, command)
		 VALUES ($1::uuid, $2, $3)
		 RETURNING id, created_at`,
		c.MatchID, c.Turn, body,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return model.CoachCommand{}, repository.MapPgError(err)
	}
	return c, nil
}

func (r *commandRepository) ListByMatch(ctx context.Context, matchID string) ([]model.CoachCommand, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, match_id::text, turn, command, created_at
		 FROM coach_commands
		 WHERE match_id = $1::uuid
		 ORDER BY id`,
		matchID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	var out []model.CoachCommand
	for rows.Next() {
		var (
			it   model.CoachCommand
			body []byte
		)
		if err := rows.Scan(&it.ID, &it.MatchID, &it.Turn, &body, &it.CreatedAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		if err := json.Unmarshal(body, &it.Command); err != nil {
			return nil, fmt.Errorf("decode command %d: %w", it.ID, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.CommandRepository = (*commandRepository)(nil)
