package app

import (
	"context"

	"go-vacation/internal/config"
	"go-vacation/internal/jobs"
	"go-vacation/internal/messaging/kafka"
	"go-vacation/internal/messaging/kafka/producer"
	"go-vacation/internal/period"
	"go-vacation/internal/shared/connection"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RunWorker relays the outbox to Kafka and runs the scheduled tasks until
// ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if err := requireKafka(cfg); err != nil {
		return err
	}

	gormDB, sqlDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DBRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	accrual := period.NewAccrualEngine(period.NewRepository(gormDB))

	purgeTask, err := jobs.NewOutboxPurgeTask(cfg.OutboxRetention)
	if err != nil {
		return err
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskAccrualSweep, Handler: jobs.NewAccrualSweepJob(accrual).Handle},
			{Type: jobs.TaskOutboxPurge, Handler: jobs.NewOutboxPurgeJob(outboxRepo).Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.AccrualCron, Task: jobs.NewAccrualSweepTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.OutboxPurgeCron, Task: purgeTask, Options: []asynq.Option{asynq.MaxRetry(1)}},
		},
	})
	if err != nil {
		return err
	}

	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.OutboxPollInterval)

	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info("worker shutting down")
	return nil
}
