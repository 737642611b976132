package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// Migrate applies every pending goose migration in dir. goose needs a
// database/sql handle, so I open a short-lived one over the pgx stdlib
// driver instead of borrowing the pool.
func (r *Repository) Migrate(ctx context.Context, dir string, logger zerolog.Logger) error {
	db, err := sql.Open("pgx", r.dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "goose").Logger()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up %s: %w", dir, err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	logger.Info().Int64("version", version).Str("dir", dir).Msg("migrations applied")
	return nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct{ logger zerolog.Logger }

func (g gooseLogger) Printf(format string, v ...interface{}) { g.logger.Info().Msgf(format, v...) }

func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.logger.Fatal().Msgf(format, v...) }
