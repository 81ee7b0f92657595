package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"hrm/internal/domain/attendance"
	"hrm/internal/jobs"
	"hrm/internal/platform/config"
	"hrm/internal/platform/db"
	"hrm/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("redis unreachable", "addr", cfg.RedisAddr, "err", err)
		os.Exit(1)
	}
	_ = rdb.Close()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:           asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		AutoClockOutCron:    cfg.AutoClockOutCron,
		AutoClockOutHandler: jobs.AutoClockOutHandler(attendance.NewService(pool)),
	})
	if err != nil {
		slog.Error("worker setup failed", "err", err)
		os.Exit(1)
	}

	slog.Info("worker running", "cron", cfg.AutoClockOutCron)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("worker failed", "err", err)
		os.Exit(1)
	}
}
