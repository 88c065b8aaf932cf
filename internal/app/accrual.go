package app

import (
	"context"

	"go-vacation/internal/config"
	"go-vacation/internal/period"

	"go.uber.org/zap"
)

// RunAccrual performs one accrual sweep and returns its report.
func RunAccrual(ctx context.Context, cfg *config.Config) (period.SweepReport, error) {
	logger := zap.L().Named("app.accrual")

	gormDB, sqlDB, err := openDatabase(cfg)
	if err != nil {
		return period.SweepReport{}, err
	}
	defer sqlDB.Close()

	report, err := period.NewAccrualEngine(period.NewRepository(gormDB)).Sweep(ctx)
	if err != nil {
		return report, err
	}

	logger.Info("accrual sweep finished",
		zap.Int("profiles", report.Profiles),
		zap.Int("created", report.Created),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
