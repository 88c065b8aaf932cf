package leave

import (
	"context"
	"database/sql"

	"go-vacation/internal/events"
	"go-vacation/internal/messaging/kafka"
	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/shared/dateutil"
)

const aggregateLeave = "leave"

// enqueueNotification writes the mail trigger to the outbox in the same
// transaction as the state change. A submission for a requester without a
// manager has nobody to notify.
func (s *service) enqueueNotification(ctx context.Context, tx *sql.Tx, l *Leave, eventType, decidedBy string) error {
	if s.outbox == nil {
		return nil
	}

	event := buildNotification(l, eventType, decidedBy)
	event.RequestID = contextutil.GetRequestID(ctx)
	event.OccurredAt = s.now().UTC()

	if _, email := event.Recipient(); email == "" {
		return nil
	}

	row, err := kafka.NewOutboxEvent(event.RequestID, aggregateLeave, l.ID.String(), eventType, events.LeaveNotificationsTopic, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

func buildNotification(l *Leave, eventType, decidedBy string) events.LeaveNotificationEvent {
	event := events.LeaveNotificationEvent{
		EventType: eventType,
		LeaveID:   l.ID.String(),
		Status:    string(l.Status),
		StartDate: dateutil.Format(l.StartDate),
		EndDate:   dateutil.Format(l.EndDate),
		TotalDays: l.TotalDays,
		DecidedBy: decidedBy,
	}
	if l.RejectionReason != nil {
		event.RejectionReason = *l.RejectionReason
	}
	if l.Profile != nil {
		event.RequesterName = l.Profile.DisplayName()
		event.RequesterEmail = l.Profile.Owner.Email
		if l.Profile.Manager != nil {
			event.ManagerName = l.Profile.Manager.DisplayName()
			event.ManagerEmail = l.Profile.Manager.Owner.Email
		}
	}
	return event
}
