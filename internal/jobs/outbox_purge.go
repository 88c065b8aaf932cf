package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-vacation/internal/messaging/kafka"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const defaultRetention = 7 * 24 * time.Hour

// OutboxPurgeJob deletes sent outbox rows older than the retention window.
type OutboxPurgeJob struct {
	repo   kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewOutboxPurgeJob(repo kafka.OutboxRepository, logger ...*zap.Logger) *OutboxPurgeJob {
	l := zap.L().Named("jobs.outbox_purge")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobs.outbox_purge")
	}
	return &OutboxPurgeJob{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (j *OutboxPurgeJob) WithClock(now func() time.Time) *OutboxPurgeJob {
	clone := *j
	clone.now = now
	return &clone
}

func (j *OutboxPurgeJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.repo == nil {
		return errors.New("outbox purge: handler not configured")
	}

	retention := defaultRetention
	if len(t.Payload()) > 0 {
		var payload OutboxPurgePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.RetentionHours > 0 {
			retention = time.Duration(payload.RetentionHours) * time.Hour
		}
	}

	before := j.now().Add(-retention)
	deleted, err := j.repo.PurgeSent(ctx, before)
	if err != nil {
		j.logger.Error("purge sent outbox events failed", zap.Error(err))
		return err
	}

	j.logger.Info("sent outbox events purged",
		zap.Int64("deleted", deleted),
		zap.Time("before", before),
	)
	return nil
}
