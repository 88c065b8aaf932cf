package leave

import (
	"errors"

	leaveerrors "go-vacation/internal/leave/errors"
	perioderrors "go-vacation/internal/period/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

// mapLedgerError reports a balance that moved after the plan was made as
// a retryable consistency failure.
func mapLedgerError(err error) error {
	if errors.Is(err, perioderrors.ErrInsufficientBalance) || errors.Is(err, perioderrors.ErrPeriodNotFound) {
		return leaveerrors.ErrBalanceChanged.WithCause(err)
	}
	return err
}
