package service

import (
	"context"
	"time"

	"pdf-annotator/internal/domain"
)

// StatusFunc fetches the current status of an agent task.
type StatusFunc func(ctx context.Context, taskID string) (domain.TaskStatus, error)

// TaskPoller watches a long-running agent task at a fixed interval and
// delivers each status snapshot to a callback. The interval timer is always
// released: on task completion, task failure, a status-fetch error, or
// context cancellation at component teardown.
type TaskPoller struct {
	interval time.Duration
	fetch    StatusFunc
	logger   domain.Logger
}

func NewTaskPoller(interval time.Duration, fetch StatusFunc, logger domain.Logger) *TaskPoller {
	return &TaskPoller{
		interval: interval,
		fetch:    fetch,
		logger:   logger,
	}
}

// Poll blocks until the task reaches a terminal state, the status fetch
// fails, or ctx is cancelled. It returns the last observed status. onUpdate
// may be nil.
func (p *TaskPoller) Poll(ctx context.Context, taskID string, onUpdate func(domain.TaskStatus)) (domain.TaskStatus, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last domain.TaskStatus
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Polling cancelled", "task_id", taskID)
			return last, ctx.Err()
		case <-ticker.C:
			status, err := p.fetch(ctx, taskID)
			if err != nil {
				return last, err
			}
			last = status
			if onUpdate != nil {
				onUpdate(status)
			}
			if status.Terminal() {
				return status, nil
			}
		}
	}
}

// Watch runs Poll in its own goroutine and reports the outcome on the
// returned channel. Cancelling ctx tears the watcher down without leaking
// the timer.
func (p *TaskPoller) Watch(ctx context.Context, taskID string, onUpdate func(domain.TaskStatus)) <-chan error {
	done := make(chan error, 1)
	go func() {
		_, err := p.Poll(ctx, taskID, onUpdate)
		done <- err
	}()
	return done
}
