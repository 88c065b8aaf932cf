package period

import (
	"context"

	perioderrors "go-vacation/internal/period/errors"

	"github.com/google/uuid"
)

// Deduction is the part of a leave request charged to one period.
type Deduction struct {
	PeriodID uuid.UUID
	Days     int
}

// ApplyDeductions locks every period, checks all balances and only then
// writes. repo must be bound to the caller's transaction so a failure
// leaves every period unchanged.
func ApplyDeductions(ctx context.Context, repo Repository, deductions []Deduction) ([]Period, error) {
	order := make([]uuid.UUID, 0, len(deductions))
	totals := make(map[uuid.UUID]int, len(deductions))
	for _, d := range deductions {
		if d.Days <= 0 {
			return nil, perioderrors.ErrInvalidDeduction
		}
		if _, seen := totals[d.PeriodID]; !seen {
			order = append(order, d.PeriodID)
		}
		totals[d.PeriodID] += d.Days
	}

	locked := make([]Period, 0, len(order))
	for _, id := range order {
		p, err := repo.FindByIDForUpdate(ctx, id.String())
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if !p.IsOpen() || p.AvailableDays < totals[id] {
			return nil, perioderrors.ErrInsufficientBalance
		}
		locked = append(locked, *p)
	}

	for i := range locked {
		if err := locked[i].Deduct(totals[locked[i].ID]); err != nil {
			return nil, err
		}
		if err := repo.Update(ctx, &locked[i]); err != nil {
			return nil, err
		}
	}
	return locked, nil
}
