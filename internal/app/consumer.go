package app

import (
	"context"

	"go-vacation/internal/config"
	"go-vacation/internal/events"
	"go-vacation/internal/messaging/kafka/consumer"
	"go-vacation/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationGroupID = "go-vacation-leave-notifications"

// RunConsumer mails leave notifications until ctx is cancelled.
func RunConsumer(ctx context.Context, cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if err := requireKafka(cfg); err != nil {
		return err
	}

	mailer := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.LeaveNotificationsTopic,
		GroupID:        notificationGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	consumer.ConsumeLeaveNotifications(ctx, reader, mailer, logger)

	logger.Info("consumer shutting down")
	return nil
}
