package leave

import (
	"time"

	leaveerrors "go-vacation/internal/leave/errors"
	"go-vacation/internal/profile"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPendingManager Status = "PENDING_MANAGER"
	StatusPendingHR      Status = "PENDING_HR"
	StatusApprovedFinal  Status = "APPROVED_FINAL"
	StatusRejected       Status = "REJECTED"
)

type Action string

const (
	ActionManagerApprove Action = "manager_approve"
	ActionFinalApprove   Action = "final_approve"
	ActionReject         Action = "reject"
)

type ApprovalMode string

const (
	ModeTwoStep ApprovalMode = "two_step"
	ModeOneStep ApprovalMode = "one_step"
)

// ParseApprovalMode defaults to the two step workflow.
func ParseApprovalMode(v string) ApprovalMode {
	if ApprovalMode(v) == ModeOneStep {
		return ModeOneStep
	}
	return ModeTwoStep
}

func (s Status) IsPending() bool {
	return s == StatusPendingManager || s == StatusPendingHR
}

func (s Status) IsTerminal() bool {
	return s == StatusApprovedFinal || s == StatusRejected
}

// Next is the workflow transition table. Terminal states accept nothing.
func (s Status) Next(a Action, mode ApprovalMode) (Status, error) {
	switch s {
	case StatusPendingManager:
		switch a {
		case ActionManagerApprove:
			if mode == ModeOneStep {
				return StatusApprovedFinal, nil
			}
			return StatusPendingHR, nil
		case ActionReject:
			return StatusRejected, nil
		}
	case StatusPendingHR:
		switch a {
		case ActionFinalApprove:
			return StatusApprovedFinal, nil
		case ActionReject:
			return StatusRejected, nil
		}
	case StatusApprovedFinal, StatusRejected:
	}
	return s, leaveerrors.ErrInvalidStatusTransition
}

type Leave struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProfileID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_profile_dates"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_leave_profile_dates"`
	EndDate     time.Time `gorm:"type:date;not null;index:idx_leave_profile_dates"`
	TotalDays   int       `gorm:"type:int;not null"`
	Status      Status    `gorm:"type:varchar(20);not null;default:'PENDING_MANAGER';index"`

	ManagerApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ManagerApprovedAt *time.Time
	HRApprovedBy      *uuid.UUID `gorm:"column:hr_approved_by;type:uuid"`
	HRApprovedAt      *time.Time `gorm:"column:hr_approved_at"`
	RejectedBy        *uuid.UUID `gorm:"type:uuid"`
	RejectedAt        *time.Time
	RejectionReason   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Profile     *profile.Profile `gorm:"foreignKey:ProfileID"`
	Allocations []Allocation     `gorm:"foreignKey:LeaveID"`
}

func (Leave) TableName() string {
	return "leave_requests"
}

// Allocation is the share of a leave charged to one acquisitive period.
type Allocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PeriodID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Days      int       `gorm:"type:int;not null"`
	CreatedAt time.Time
}

func (Allocation) TableName() string {
	return "leave_allocations"
}

// RequesterName is the display name used in mails and the calendar.
func (l Leave) RequesterName() string {
	if l.Profile == nil {
		return ""
	}
	return l.Profile.DisplayName()
}

// AllocatedDays sums the allocation plan.
func (l Leave) AllocatedDays() int {
	total := 0
	for _, a := range l.Allocations {
		total += a.Days
	}
	return total
}

// stamp records who moved the leave to status and when.
func (l *Leave) stamp(status Status, actorID uuid.UUID, at time.Time, reason string) {
	switch status {
	case StatusPendingHR:
		l.ManagerApprovedBy, l.ManagerApprovedAt = &actorID, &at
	case StatusApprovedFinal:
		if l.Status == StatusPendingManager {
			l.ManagerApprovedBy, l.ManagerApprovedAt = &actorID, &at
		} else {
			l.HRApprovedBy, l.HRApprovedAt = &actorID, &at
		}
	case StatusRejected:
		l.RejectedBy, l.RejectedAt = &actorID, &at
		l.RejectionReason = &reason
	}
	l.Status = status
}
