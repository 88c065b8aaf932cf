package period

import (
	"sort"
	"time"

	perioderrors "go-vacation/internal/period/errors"
	"go-vacation/internal/shared/dateutil"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusClosed  Status = "CLOSED"
	StatusExpired Status = "EXPIRED"
)

// EntitledDays is granted to every acquisitive period.
const EntitledDays = 30

type Period struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_period_profile_start"`
	StartDate     time.Time `gorm:"type:date;not null;uniqueIndex:uq_period_profile_start"`
	EndDate       time.Time `gorm:"type:date;not null"`
	EntitledDays  int       `gorm:"type:int;not null;default:30"`
	AvailableDays int       `gorm:"type:int;not null;default:30"`
	Status        Status    `gorm:"type:varchar(10);not null;default:'OPEN'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Period) TableName() string {
	return "acquisitive_periods"
}

// New builds the OPEN period covering one year from start.
func New(profileID uuid.UUID, start time.Time) Period {
	start = dateutil.Date(start)
	return Period{
		ID:            uuid.New(),
		ProfileID:     profileID,
		StartDate:     start,
		EndDate:       dateutil.AddDays(dateutil.AddYears(start, 1), -1),
		EntitledDays:  EntitledDays,
		AvailableDays: EntitledDays,
		Status:        StatusOpen,
	}
}

func (p Period) IsOpen() bool {
	return p.Status == StatusOpen
}

// Deduct takes days from the balance and closes the period once it is
// exhausted. A balance lower than days leaves the period untouched.
func (p *Period) Deduct(days int) error {
	if days <= 0 {
		return perioderrors.ErrInvalidDeduction
	}
	if !p.IsOpen() || p.AvailableDays < days {
		return perioderrors.ErrInsufficientBalance
	}
	p.AvailableDays -= days
	if p.AvailableDays == 0 {
		p.Status = StatusClosed
	}
	return nil
}

// Adjust overwrites the balance during onboarding.
func (p *Period) Adjust(available int) error {
	if available < 0 || available > p.EntitledDays {
		return perioderrors.ErrInvalidAdjustment
	}
	p.AvailableDays = available
	if available == 0 {
		p.Status = StatusClosed
	} else {
		p.Status = StatusOpen
	}
	return nil
}

// OpenBalance sums the balance of OPEN periods.
func OpenBalance(periods []Period) int {
	total := 0
	for _, p := range periods {
		if p.IsOpen() {
			total += p.AvailableDays
		}
	}
	return total
}

// Active returns the oldest OPEN period that still has balance.
func Active(periods []Period) *Period {
	sorted := make([]Period, len(periods))
	copy(sorted, periods)
	SortOldestFirst(sorted)
	for i := range sorted {
		if sorted[i].IsOpen() && sorted[i].AvailableDays > 0 {
			return &sorted[i]
		}
	}
	return nil
}

func SortOldestFirst(periods []Period) {
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})
}
