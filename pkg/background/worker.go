package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
	"grubdash/pkg/logger"
)

// Task is a periodic job.
type Task interface {
	// TTL is the pause between runs.
	TTL() time.Duration

	Do(context.Context) error

	// Info names the task in logs.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Worker struct {
	log   handlerLogger
	tasks []Task
	group *errgroup.Group
}

// New runs every task once and fails if any warm-up run fails or panics.
// After that each task repeats every TTL until ctx is cancelled.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("task %q panicked during warm-up: %v", task.Info(), r)
					log.With(
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", string(debug.Stack())),
					).Error("task panic during warm-up")
				}
			}()

			log.With(
				logger.NewField("task", task.Info()),
			).Info("warming up task")
			return task.Do(initCtx)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	worker := &Worker{
		log:   log,
		tasks: tasks,
		group: &errgroup.Group{},
	}

	for _, task := range tasks {
		worker.group.Go(func() error {
			worker.runBackgroundTask(ctx, task)
			return nil
		})
	}

	return worker, nil
}

// Wait blocks until every task loop has exited.
func (w *Worker) Wait() {
	_ = w.group.Wait()
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	taskLog := w.log.With(
		logger.NewField("task", task.Info()),
	)

	ttl := task.TTL()
	if ttl <= 0 {
		taskLog.With(
			logger.NewField("ttl", ttl.String()),
		).Warn("invalid TTL, periodic execution disabled")
		return
	}

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			taskLog.Info("stopping task")
			return
		case <-ticker.C:
			w.executeTaskSafely(ctx, taskLog, task)
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, taskLog logger.Logger, task Task) {
	defer func() {
		if r := recover(); r != nil {
			taskLog.With(
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			).Error("background task panic")
		}
	}()

	if err := task.Do(ctx); err != nil {
		taskLog.With(
			logger.NewField("error", err),
		).Error("background task failed")
	}
}
