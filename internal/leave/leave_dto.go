package leave

import (
	"time"

	"go-vacation/internal/period"
	"go-vacation/internal/shared/dateutil"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a workflow operation.
type Actor struct {
	UserID string
	Role   string
}

type SubmitLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

type AllocationResponse struct {
	PeriodID string `json:"period_id"`
	Days     int    `json:"days"`
}

type LeaveResponse struct {
	ID                string               `json:"id"`
	RequesterID       string               `json:"requester_id"`
	ProfileID         string               `json:"profile_id"`
	RequesterName     string               `json:"requester_name,omitempty"`
	OrgUnit           string               `json:"org_unit,omitempty"`
	StartDate         string               `json:"start_date"`
	EndDate           string               `json:"end_date"`
	TotalDays         int                  `json:"total_days"`
	Status            Status               `json:"status"`
	SubmittedAt       string               `json:"submitted_at"`
	ManagerApprovedBy *string              `json:"manager_approved_by,omitempty"`
	ManagerApprovedAt *string              `json:"manager_approved_at,omitempty"`
	HRApprovedBy      *string              `json:"hr_approved_by,omitempty"`
	HRApprovedAt      *string              `json:"hr_approved_at,omitempty"`
	RejectedBy        *string              `json:"rejected_by,omitempty"`
	RejectedAt        *string              `json:"rejected_at,omitempty"`
	RejectionReason   *string              `json:"rejection_reason,omitempty"`
	Allocations       []AllocationResponse `json:"allocations,omitempty"`
}

type PeriodResponse struct {
	ID            string `json:"id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	EntitledDays  int    `json:"entitled_days"`
	AvailableDays int    `json:"available_days"`
	Status        string `json:"status"`
}

type DashboardResponse struct {
	HasProfile   bool            `json:"has_profile"`
	IsManager    bool            `json:"is_manager"`
	OpenBalance  int             `json:"open_balance"`
	ActivePeriod *PeriodResponse `json:"active_period,omitempty"`
	Leaves       []LeaveResponse `json:"leaves"`
}

// CalendarEvent follows the full-calendar event shape; End is exclusive.
type CalendarEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:                l.ID.String(),
		RequesterID:       l.RequesterID.String(),
		ProfileID:         l.ProfileID.String(),
		RequesterName:     l.RequesterName(),
		StartDate:         dateutil.Format(l.StartDate),
		EndDate:           dateutil.Format(l.EndDate),
		TotalDays:         l.TotalDays,
		Status:            l.Status,
		SubmittedAt:       l.CreatedAt.UTC().Format(time.RFC3339),
		ManagerApprovedBy: uuidString(l.ManagerApprovedBy),
		ManagerApprovedAt: timeString(l.ManagerApprovedAt),
		HRApprovedBy:      uuidString(l.HRApprovedBy),
		HRApprovedAt:      timeString(l.HRApprovedAt),
		RejectedBy:        uuidString(l.RejectedBy),
		RejectedAt:        timeString(l.RejectedAt),
		RejectionReason:   l.RejectionReason,
	}
	if l.Profile != nil {
		resp.OrgUnit = l.Profile.OrgUnit
	}
	for _, a := range l.Allocations {
		resp.Allocations = append(resp.Allocations, AllocationResponse{PeriodID: a.PeriodID.String(), Days: a.Days})
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapPeriod(p period.Period) PeriodResponse {
	return PeriodResponse{
		ID:            p.ID.String(),
		StartDate:     dateutil.Format(p.StartDate),
		EndDate:       dateutil.Format(p.EndDate),
		EntitledDays:  p.EntitledDays,
		AvailableDays: p.AvailableDays,
		Status:        string(p.Status),
	}
}

func mapToCalendarEvent(l Leave) CalendarEvent {
	return CalendarEvent{
		Title: l.RequesterName(),
		Start: dateutil.Format(l.StartDate),
		End:   dateutil.Format(dateutil.AddDays(l.EndDate, 1)),
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dateutil.FormatDisplay(*t)
}
