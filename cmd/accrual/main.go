package main

import (
	"context"
	"os/signal"
	"syscall"

	"go-vacation/internal/app"
	"go-vacation/internal/bootstrap"
	"go-vacation/internal/config"

	"go.uber.org/zap"
)

// accrual runs a single sweep, for cron hosts without the task worker.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := app.RunAccrual(ctx, cfg)
	if err != nil {
		logger.Fatal("accrual sweep failed", zap.Error(err))
	}
	if report.Failed > 0 {
		logger.Warn("accrual sweep finished with failures", zap.Int("failed", report.Failed))
	}
}
