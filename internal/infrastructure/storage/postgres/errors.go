package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"posada/internal/core/apperror"
)

// Postgres error codes the repos react to.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TranslateConstraintError maps database constraint violations to business
// errors. Uniqueness backs two invariants enforced at the storage boundary:
// one stay per reservation and one active occupancy per stay; racing inserts
// surface as state conflicts rather than raw SQL errors.
func TranslateConstraintError(err error, entity, operation string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return apperror.NewStateConflict(entity, "exists", operation).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	case pgForeignKeyViolation:
		return apperror.NewConflict("referenced record does not exist or is still in use").
			WithDetail("entity", entity).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	}
	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
