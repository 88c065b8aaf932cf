package leave

import (
	"time"

	leaveerrors "go-vacation/internal/leave/errors"
	"go-vacation/internal/period"
	"go-vacation/internal/shared/dateutil"

	"github.com/google/uuid"
)

// MinimumDays is the shortest leave that can be requested.
const MinimumDays = 10

// ValidationInput is everything the rules need, loaded by the caller.
type ValidationInput struct {
	Start    time.Time
	End      time.Time
	HireDate time.Time
	OrgUnit  string
	// Periods are the requester's periods; only OPEN ones count.
	Periods []period.Period
	// Taken are leaves of the same org unit that already block the calendar.
	Taken []Leave
	// ExcludeID is the leave being edited, if any.
	ExcludeID *uuid.UUID
}

type ValidatedRequest struct {
	Start time.Time
	End   time.Time
	Days  int
}

// ValidateRequest applies the rules in order and returns the first
// violation only.
func ValidateRequest(in ValidationInput) (ValidatedRequest, error) {
	start, end := dateutil.Date(in.Start), dateutil.Date(in.End)

	if end.Before(start) {
		return ValidatedRequest{}, leaveerrors.ErrEndBeforeStart
	}

	days := dateutil.DaysInclusive(start, end)
	if days < MinimumDays {
		return ValidatedRequest{}, leaveerrors.ErrBelowMinimumDays.WithDetails(map[string]int{
			"requested_days": days,
			"minimum_days":   MinimumDays,
		})
	}

	eligibleFrom := dateutil.AddYears(dateutil.Date(in.HireDate), 1)
	if start.Before(eligibleFrom) {
		return ValidatedRequest{}, leaveerrors.ErrTenureNotReached.WithDetails(map[string]string{
			"eligible_from": dateutil.Format(eligibleFrom),
		})
	}

	if balance := period.OpenBalance(in.Periods); balance < days {
		return ValidatedRequest{}, leaveerrors.ErrInsufficientBalance.WithDetails(map[string]int{
			"requested_days": days,
			"available_days": balance,
		})
	}

	if in.OrgUnit != "" {
		for _, other := range in.Taken {
			if in.ExcludeID != nil && other.ID == *in.ExcludeID {
				continue
			}
			if !countsAsTaken(other.Status) {
				continue
			}
			if dateutil.Overlaps(start, end, other.StartDate, other.EndDate) {
				return ValidatedRequest{}, leaveerrors.ErrDateConflict.WithDetails(map[string]string{
					"conflict_start": dateutil.Format(other.StartDate),
					"conflict_end":   dateutil.Format(other.EndDate),
				})
			}
		}
	}

	return ValidatedRequest{Start: start, End: end, Days: days}, nil
}

// TakenStatuses block colleagues of the same org unit.
var TakenStatuses = []Status{StatusApprovedFinal}

func countsAsTaken(s Status) bool {
	for _, t := range TakenStatuses {
		if s == t {
			return true
		}
	}
	return false
}
