// Package tasks provides the in-process task queue used for fire-and-forget
// background work. Enqueue hands the task to a buffered channel consumed by
// a worker pool; a failed run is redelivered with a bounded number of
// attempts, so handlers must be idempotent.
package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

// HandlerFunc processes a single task. Returning an error triggers
// redelivery until the attempt budget is exhausted.
type HandlerFunc func(ctx context.Context, task domain.Task) error

type delivery struct {
	task    domain.Task
	attempt int
}

// Queue is an in-process task queue with at-least-once delivery.
type Queue struct {
	logger      *slog.Logger
	ch          chan delivery
	workers     int
	maxAttempts int
	retryDelay  time.Duration

	mu       sync.RWMutex
	handlers map[string]HandlerFunc

	// done is closed when the pool's context is cancelled so overflow and
	// redelivery sends stop instead of blocking on a channel nobody drains.
	done chan struct{}

	wg sync.WaitGroup
}

// NewQueue returns a queue with the given worker count and channel buffer.
// maxAttempts counts the first delivery; retryDelay separates redeliveries.
func NewQueue(logger *slog.Logger, workers, buffer, maxAttempts int, retryDelay time.Duration) *Queue {
	if workers < 1 {
		workers = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Queue{
		logger:      logger,
		ch:          make(chan delivery, buffer),
		workers:     workers,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		handlers:    make(map[string]HandlerFunc),
		done:        make(chan struct{}),
	}
}

// Register binds a handler to a task kind. Tasks of an unregistered kind are
// logged and dropped.
func (q *Queue) Register(kind string, h HandlerFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[kind] = h
}

// Enqueue hands the task off without blocking the caller. If the buffer is
// full the send happens from a goroutine, so the serving path never waits on
// pipeline backlog.
func (q *Queue) Enqueue(task domain.Task) {
	d := delivery{task: task, attempt: 1}
	select {
	case q.ch <- d:
	default:
		go func() {
			select {
			case q.ch <- d:
			case <-q.done:
			}
		}()
	}
}

// Start launches the worker pool. Workers stop when ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		close(q.done)
	}()
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			q.run(ctx)
		}()
	}
}

// Wait blocks until all workers have stopped.
func (q *Queue) Wait() {
	q.wg.Wait()
}

func (q *Queue) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-q.ch:
			q.process(ctx, d)
		}
	}
}

func (q *Queue) process(ctx context.Context, d delivery) {
	q.mu.RLock()
	h, ok := q.handlers[d.task.Kind]
	q.mu.RUnlock()
	if !ok {
		q.logger.Warn("dropping task with no handler", "kind", d.task.Kind)
		return
	}

	err := h(ctx, d.task)
	if err == nil {
		return
	}
	if d.attempt >= q.maxAttempts {
		q.logger.Error("task failed, attempts exhausted",
			"kind", d.task.Kind, "attempt", d.attempt, "err", err)
		return
	}
	q.logger.Warn("task failed, redelivering",
		"kind", d.task.Kind, "attempt", d.attempt, "err", err)

	next := delivery{task: d.task, attempt: d.attempt + 1}
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		select {
		case <-ctx.Done():
		case <-time.After(q.retryDelay):
			select {
			case <-ctx.Done():
			case q.ch <- next:
			}
		}
	}()
}
