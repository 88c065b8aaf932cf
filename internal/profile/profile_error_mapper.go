package profile

import (
	"errors"
	"strings"

	profileerrors "go-vacation/internal/profile/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueEmployeeNumber = "uq_profile_employee_number"
	uniqueUserEmail      = "uq_users_email"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profileerrors.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case uniqueEmployeeNumber:
				return profileerrors.ErrEmployeeNumberTaken
			case uniqueUserEmail:
				return profileerrors.ErrEmailTaken
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueEmployeeNumber) {
		return profileerrors.ErrEmployeeNumberTaken
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueUserEmail) {
		return profileerrors.ErrEmailTaken
	}

	return err
}
