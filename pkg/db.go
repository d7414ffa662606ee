package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgres error codes: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
	pgCodeCheckViolation      = "23514"
)

// IsUniqueViolationError checks if the error comes from a violated
// unique constraint, e.g. a duplicate exercise name or a second
// daily activity row for the same date.
func IsUniqueViolationError(err error) bool {
	return pgErrCode(err) == pgCodeUniqueViolation
}

// IsForeignKeyViolationError checks if the error comes from a violated
// foreign key, e.g. a workout exercise referencing a missing exercise.
func IsForeignKeyViolationError(err error) bool {
	return pgErrCode(err) == pgCodeForeignKeyViolation
}

// IsCheckViolationError checks if the error comes from a violated
// check constraint, e.g. a non-positive weight.
func IsCheckViolationError(err error) bool {
	return pgErrCode(err) == pgCodeCheckViolation
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
