// file: internals/features/transport/buses/repository/pg_errors.go
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// PGError: ringkasan error Postgres (pgx maupun lib/pq) untuk keperluan log.
type PGError struct {
	Code       string
	Constraint string
	Message    string
}

// AsPGError mengenali error Postgres dari driver pgx atau lib/pq.
func AsPGError(err error) (PGError, bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return PGError{Code: pgxErr.Code, Constraint: pgxErr.ConstraintName, Message: pgxErr.Message}, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return PGError{Code: string(pqErr.Code), Constraint: pqErr.Constraint, Message: pqErr.Message}, true
	}
	return PGError{}, false
}
