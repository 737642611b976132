package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
)

// q is the query surface shared by pgxpool.Pool and pgx.Tx.
type q interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok && tx != nil
}

// getQ returns the transaction stored in ctx, or the pool.
func getQ(ctx context.Context, pool *pgxpool.Pool) q {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return pool
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

func sanitizeLimitOffset(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type txManager struct{ pool *pgxpool.Pool }

func NewTxManager(pool *pgxpool.Pool) repository.TxManager { return &txManager{pool: pool} }

// WithinTx runs fn in a transaction. A call nested inside another
// WithinTx joins the outer transaction instead of opening a second one.
func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}
	if err := ensurePool(m.pool); err != nil {
		return err
	}
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return repository.MapPgError(err)
	}
	committed := false
	defer func() {
		if !committed {
			// background ctx: the caller's may already be cancelled
			_ = tx.Rollback(context.Background())
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		return repository.MapPgError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return repository.MapPgError(err)
	}
	committed = true
	return nil
}

var _ repository.TxManager = (*txManager)(nil)

func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}
