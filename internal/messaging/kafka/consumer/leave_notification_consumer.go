package consumer

import (
	"context"
	"encoding/json"

	"go-vacation/internal/events"
	"go-vacation/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer loop uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Outcome string

const (
	OutcomeSent      Outcome = "sent"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeMalformed Outcome = "malformed"
	OutcomeFailed    Outcome = "failed"
)

// HandleLeaveNotification sends the mail for one message. Every outcome is
// final: the caller commits the offset regardless.
func HandleLeaveNotification(ctx context.Context, value []byte, mailer notification.Mailer, log *zap.Logger) Outcome {
	var event events.LeaveNotificationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.Error("decode leave notification event failed", zap.Error(err))
		return OutcomeMalformed
	}

	msg, ok := notification.Compose(event)
	if !ok {
		log.Info("leave notification has no recipient, skipping",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
		)
		return OutcomeSkipped
	}

	if err := mailer.Send(ctx, msg); err != nil {
		log.Error("send leave notification failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return OutcomeFailed
	}

	log.Info("leave notification sent",
		zap.String("leave_id", event.LeaveID),
		zap.String("event_type", event.EventType),
		zap.String("status", event.Status),
	)
	return OutcomeSent
}

func ConsumeLeaveNotifications(
	ctx context.Context,
	reader MessageReader,
	mailer notification.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notifications")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		HandleLeaveNotification(ctx, msg.Value, mailer, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
		}
	}
}
