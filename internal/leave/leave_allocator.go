package leave

import (
	leaveerrors "go-vacation/internal/leave/errors"
	"go-vacation/internal/period"

	"github.com/google/uuid"
)

// Allocate spreads days over the OPEN periods, oldest first. Balances are
// not touched; the plan is only charged at final approval.
func Allocate(leaveID uuid.UUID, days int, periods []period.Period) ([]Allocation, error) {
	ordered := make([]period.Period, len(periods))
	copy(ordered, periods)
	period.SortOldestFirst(ordered)

	remaining := days
	allocations := make([]Allocation, 0, 2)
	for _, p := range ordered {
		if remaining == 0 {
			break
		}
		if !p.IsOpen() || p.AvailableDays <= 0 {
			continue
		}
		take := min(p.AvailableDays, remaining)
		allocations = append(allocations, Allocation{
			ID:       uuid.New(),
			LeaveID:  leaveID,
			PeriodID: p.ID,
			Days:     take,
		})
		remaining -= take
	}

	if remaining > 0 {
		return nil, leaveerrors.ErrAllocationShortfall
	}
	return allocations, nil
}

// deductions turns an allocation plan into ledger deductions.
func deductions(allocations []Allocation) []period.Deduction {
	out := make([]period.Deduction, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, period.Deduction{PeriodID: a.PeriodID, Days: a.Days})
	}
	return out
}
