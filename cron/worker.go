package cron

import (
	"context"
	"fmt"
	"time"

	"campusvenue/config"
	"campusvenue/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingFinisher moves bookings that have ended to Finished.
type BookingFinisher interface {
	FinishPastBookings(ctx context.Context) (int64, error)
	FinishBookingsEndedBy(ctx context.Context, cutoff time.Time) (int64, error)
}

// Worker owns the asynq scheduler that enqueues sweeps and the server that runs them.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	client    *asynq.Client
	logger    *zap.Logger
}

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewServeMux routes sweep tasks to finisher.
func NewServeMux(finisher BookingFinisher, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeFinishSweep, handleFinishSweep(finisher, logger))
	return mux
}

// StartFinishSweepWorker registers the sweep under FINISH_SWEEP_SPEC and starts
// processing in the background.
func StartFinishSweepWorker(finisher BookingFinisher, logger *zap.Logger) (*Worker, error) {
	opt := redisOpt()

	task, err := tasks.NewFinishSweepTask(nil)
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: time.Local})
	entryID, err := scheduler.Register(config.AppConfig.FinishSweepSpec, task)
	if err != nil {
		scheduler.Shutdown()
		return nil, fmt.Errorf("failed to register finish sweep %q: %w", config.AppConfig.FinishSweepSpec, err)
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 2,
		Queues:      map[string]int{"default": 1},
	})
	if err := srv.Start(NewServeMux(finisher, logger)); err != nil {
		scheduler.Shutdown()
		return nil, fmt.Errorf("failed to start sweep worker: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		scheduler.Shutdown()
		srv.Shutdown()
		return nil, fmt.Errorf("failed to start sweep scheduler: %w", err)
	}

	logger.Info("finish sweep scheduled",
		zap.String("spec", config.AppConfig.FinishSweepSpec), zap.String("entryID", entryID))
	return &Worker{server: srv, scheduler: scheduler, client: asynq.NewClient(opt), logger: logger}, nil
}

// EnqueueSweep queues a one-off sweep for bookings that ended by cutoff.
func (w *Worker) EnqueueSweep(ctx context.Context, cutoff time.Time) (string, error) {
	return enqueueSweep(ctx, w.client, cutoff)
}

// EnqueueSweep queues a sweep on the configured queue without running a worker.
func EnqueueSweep(ctx context.Context, cutoff time.Time) (string, error) {
	client := asynq.NewClient(redisOpt())
	defer client.Close()
	return enqueueSweep(ctx, client, cutoff)
}

func enqueueSweep(ctx context.Context, client *asynq.Client, cutoff time.Time) (string, error) {
	task, err := tasks.NewFinishSweepTask(&cutoff)
	if err != nil {
		return "", err
	}
	info, err := client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue finish sweep: %w", err)
	}
	return info.ID, nil
}

// Shutdown stops scheduling and waits for in-flight sweeps.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	if err := w.client.Close(); err != nil {
		w.logger.Warn("failed to close sweep client", zap.Error(err))
	}
	w.logger.Info("finish sweep worker stopped")
}

func handleFinishSweep(finisher BookingFinisher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseFinishSweepPayload(task)
		if err != nil {
			logger.Error("invalid finish sweep payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		var n int64
		if p.Cutoff != nil {
			n, err = finisher.FinishBookingsEndedBy(ctx, *p.Cutoff)
		} else {
			n, err = finisher.FinishPastBookings(ctx)
		}
		if err != nil {
			logger.Error("finish sweep failed", zap.Error(err))
			return err
		}
		if n > 0 {
			logger.Info("finished past bookings", zap.Int64("count", n))
		}
		return nil
	}
}
