package jobs

import (
	"context"
	"errors"
	"time"

	"go-vacation/internal/period"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type Sweeper interface {
	Sweep(ctx context.Context) (period.SweepReport, error)
}

// AccrualSweepJob opens every period owed to every profile. The sweep is
// idempotent so asynq retries are safe.
type AccrualSweepJob struct {
	sweeper Sweeper
	logger  *zap.Logger
}

func NewAccrualSweepJob(sweeper Sweeper, logger ...*zap.Logger) *AccrualSweepJob {
	l := zap.L().Named("jobs.accrual_sweep")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobs.accrual_sweep")
	}
	return &AccrualSweepJob{sweeper: sweeper, logger: l}
}

func (j *AccrualSweepJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.sweeper == nil {
		return errors.New("accrual sweep: handler not configured")
	}

	started := time.Now()
	report, err := j.sweeper.Sweep(ctx)
	if err != nil {
		j.logger.Error("accrual sweep failed", zap.Error(err))
		return err
	}

	j.logger.Info("accrual sweep completed",
		zap.Int("profiles", report.Profiles),
		zap.Int("created", report.Created),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", time.Since(started)),
	)
	return nil
}
