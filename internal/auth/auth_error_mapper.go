package auth

import (
	"errors"
	"strings"

	autherrors "go-vacation/internal/auth/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// mapRegisterError turns unique violations raised while inserting the
// user and its profile into the matching conflict.
func mapRegisterError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return autherrors.ErrEmailAlreadyRegistered.WithCause(err)
	case strings.Contains(pgErr.ConstraintName, "username"):
		return autherrors.ErrUsernameAlreadyRegistered.WithCause(err)
	case strings.Contains(pgErr.ConstraintName, "employee_number"):
		return autherrors.ErrEmployeeNumberAlreadyRegistered.WithCause(err)
	}
	return err
}
