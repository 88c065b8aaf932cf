package events

import "time"

const LeaveNotificationsTopic = "vacation.leave.notifications.v1"

const (
	LeaveSubmitted = "leave_submitted"
	LeaveDecided   = "leave_decided"
)

// LeaveNotificationEvent carries everything the mailer needs so the
// consumer never has to read the database.
type LeaveNotificationEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	LeaveID         string    `json:"leave_id"`
	Status          string    `json:"status"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	TotalDays       int       `json:"total_days"`
	RequesterName   string    `json:"requester_name"`
	RequesterEmail  string    `json:"requester_email"`
	ManagerName     string    `json:"manager_name,omitempty"`
	ManagerEmail    string    `json:"manager_email,omitempty"`
	DecidedBy       string    `json:"decided_by,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Recipient is the manager for a submission and the requester for a
// decision.
func (e LeaveNotificationEvent) Recipient() (name, email string) {
	if e.EventType == LeaveSubmitted {
		return e.ManagerName, e.ManagerEmail
	}
	return e.RequesterName, e.RequesterEmail
}
