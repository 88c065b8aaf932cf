package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	QueueDefault = "default"

	TaskAccrualSweep = "period:accrual_sweep"
	TaskOutboxPurge  = "outbox:purge"
)

type OutboxPurgePayload struct {
	RetentionHours int `json:"retention_hours"`
}

func NewAccrualSweepTask() *asynq.Task {
	return asynq.NewTask(TaskAccrualSweep, nil, asynq.Queue(QueueDefault))
}

func NewOutboxPurgeTask(retention time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(OutboxPurgePayload{RetentionHours: int(retention / time.Hour)})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOutboxPurge, data, asynq.Queue(QueueDefault)), nil
}
