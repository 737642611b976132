package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// MapPgError translates the Postgres codes higher layers act on into
// domain errors. Anything else passes through untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrAlreadyExists
		case pgerrcode.ForeignKeyViolation, pgerrcode.SerializationFailure:
			return ErrConflict
		case pgerrcode.InvalidTextRepresentation:
			// malformed uuid in a lookup
			return ErrNotFound
		}
	}
	return err
}
