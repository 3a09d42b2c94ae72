package repo

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fundledger/internal/domain"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"

	projectNameConstraint = "charity_projects_name_key"
)

// mapError converts driver errors into domain errors. Unknown errors are
// returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == projectNameConstraint {
				return domain.Fail(domain.ErrConflict, domain.MsgProjectNameTaken)
			}
			return domain.Fail(domain.ErrConflict, domain.MsgFundsAlreadyAssigned)
		case pgCheckViolation:
			return domain.Fail(domain.ErrConflict, domain.MsgFundsAlreadyAssigned)
		}
	}
	return err
}
