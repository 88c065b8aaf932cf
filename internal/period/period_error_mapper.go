package period

import (
	"errors"
	"strings"

	perioderrors "go-vacation/internal/period/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueProfileStart = "uq_period_profile_start"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return perioderrors.ErrPeriodNotFound
	}
	return err
}

// isDuplicatePeriod reports a concurrent accrual run inserting the same
// (profile, start) first.
func isDuplicatePeriod(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == uniqueProfileStart
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueProfileStart)
}
