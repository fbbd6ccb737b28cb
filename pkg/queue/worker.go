package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/filemanager/pkg/logger"
)

// WorkerRepository defines the interface for worker operations.
type WorkerRepository interface {
	// ClaimTask atomically claims the next ready task, including tasks whose
	// lock expired. Returns ErrNoTaskToClaim when nothing is ready.
	ClaimTask(ctx context.Context, workerID string, queues []string, lockDuration time.Duration) (*Task, error)

	// CompleteTask marks a claimed task as completed.
	CompleteTask(ctx context.Context, taskID string) error

	// FailTask records the error, increments the retry count and puts the
	// task back to pending after a backoff.
	FailTask(ctx context.Context, taskID string, errMsg string) error

	// MoveToDLQ removes the task from the queue into the dead letter store.
	MoveToDLQ(ctx context.Context, taskID string, errMsg string) error
}

// WorkerOption is a functional option for configuring a worker.
type WorkerOption func(*workerOptions)

type workerOptions struct {
	queues             []string
	pullInterval       time.Duration
	lockTimeout        time.Duration
	maxConcurrentTasks int
	logger             *slog.Logger
}

// WithQueues sets which queues the worker pulls from.
func WithQueues(queues ...string) WorkerOption {
	return func(o *workerOptions) {
		var qs []string
		for _, q := range queues {
			if q != "" {
				qs = append(qs, q)
			}
		}
		if len(qs) > 0 {
			o.queues = qs
		}
	}
}

// WithPullInterval sets how often an idle worker polls for tasks.
func WithPullInterval(d time.Duration) WorkerOption {
	return func(o *workerOptions) {
		if d > 0 {
			o.pullInterval = d
		}
	}
}

// WithLockTimeout sets the claim lock duration. It also bounds handler runtime.
func WithLockTimeout(d time.Duration) WorkerOption {
	return func(o *workerOptions) {
		if d > 0 {
			o.lockTimeout = d
		}
	}
}

// WithMaxConcurrentTasks sets the maximum number of concurrent tasks.
func WithMaxConcurrentTasks(n int) WorkerOption {
	return func(o *workerOptions) {
		if n > 0 {
			o.maxConcurrentTasks = n
		}
	}
}

// WithWorkerLogger sets the logger for the worker.
func WithWorkerLogger(l *slog.Logger) WorkerOption {
	return func(o *workerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Worker pulls tasks and dispatches them to registered handlers.
type Worker struct {
	repo     WorkerRepository
	handlers map[string]Handler
	opts     workerOptions
	workerID string
	log      *slog.Logger

	sem  chan struct{}
	wake chan struct{}
	wg   sync.WaitGroup

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorker creates a new task worker.
func NewWorker(repo WorkerRepository, opts ...WorkerOption) (*Worker, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}

	o := workerOptions{
		queues:             []string{DefaultQueueName},
		pullInterval:       time.Second,
		lockTimeout:        5 * time.Minute,
		maxConcurrentTasks: 1,
		logger:             logger.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	return &Worker{
		repo:     repo,
		handlers: make(map[string]Handler),
		opts:     o,
		workerID: id,
		log:      o.logger.With(logger.Component("queue.worker"), slog.String("worker_id", id)),
		sem:      make(chan struct{}, o.maxConcurrentTasks),
		wake:     make(chan struct{}, 1),
	}, nil
}

// RegisterHandlers registers task handlers. A later handler with the same
// name replaces the earlier one. Handlers must be registered before Start.
func (w *Worker) RegisterHandlers(handlers ...Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, h := range handlers {
		if h != nil {
			w.handlers[h.Name()] = h
		}
	}
}

// Start begins processing tasks in the background.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return ErrWorkerStarted
	}
	if len(w.handlers) == 0 {
		return ErrNoHandlers
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.run(ctx, w.done)

	w.log.Info("worker started",
		slog.Any("queues", w.opts.queues),
		slog.Int("max_concurrent", cap(w.sem)))

	return nil
}

// Stop cancels polling and waits for in-flight tasks to finish.
func (w *Worker) Stop() error {
	w.mu.Lock()
	if w.cancel == nil {
		w.mu.Unlock()
		return ErrWorkerNotStarted
	}
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()

	cancel()
	<-done
	w.wg.Wait()

	w.log.Info("worker stopped")
	return nil
}

// Run starts the worker and blocks until ctx is done. Suitable for errgroup.
func (w *Worker) Run(ctx context.Context) func() error {
	return func() error {
		if err := w.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return w.Stop()
	}
}

func (w *Worker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.opts.pullInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-w.wake:
		}

		// Fill every free slot; each slot claims at most one task.
	fill:
		for {
			select {
			case w.sem <- struct{}{}:
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-w.sem }()

					claimed, err := w.pullAndProcess(ctx)
					if err != nil && !errors.Is(err, ErrHandlerNotFound) {
						w.log.Error("failed to process task", logger.Error(err))
					}
					if claimed {
						w.signal()
					}
				}()
			default:
				break fill
			}
		}
	}
}

// signal asks the loop to poll again without waiting for the ticker.
func (w *Worker) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Worker) pullAndProcess(ctx context.Context) (bool, error) {
	if ctx.Err() != nil {
		return false, nil
	}

	task, err := w.repo.ClaimTask(ctx, w.workerID, w.opts.queues, w.opts.lockTimeout)
	if errors.Is(err, ErrNoTaskToClaim) || (err != nil && ctx.Err() != nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to claim task: %w", err)
	}

	w.log.Debug("claimed task",
		logger.TaskID(task.ID),
		slog.String("task_name", task.TaskName),
		slog.String("queue", task.Queue))

	return true, w.processTask(task)
}

func (w *Worker) processTask(task *Task) error {
	w.mu.Lock()
	handler, ok := w.handlers[task.TaskName]
	w.mu.Unlock()

	if !ok {
		return w.handleMissingHandler(task)
	}

	// Tasks are not tied to the worker lifecycle so Stop lets them finish.
	ctx, cancel := context.WithTimeout(context.Background(), w.opts.lockTimeout)
	defer cancel()

	start := time.Now()
	err := safeHandle(ctx, handler, task)
	duration := time.Since(start)

	if err != nil {
		return w.handleTaskFailure(ctx, task, err, duration)
	}

	if err := w.repo.CompleteTask(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to mark task %s as completed: %w", task.ID, err)
	}

	w.log.Info("task completed",
		logger.TaskID(task.ID),
		slog.String("task_name", task.TaskName),
		logger.Duration(duration))

	return nil
}

func safeHandle(ctx context.Context, h Handler, task *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in handler: %v", r)
		}
	}()
	return h.Handle(ctx, task.Payload)
}

// handleMissingHandler sends the task straight to the DLQ since retries
// cannot succeed until a handler is deployed.
func (w *Worker) handleMissingHandler(task *Task) error {
	w.log.Error("no handler registered for task",
		logger.TaskID(task.ID),
		slog.String("task_name", task.TaskName))

	ctx := context.Background()
	if err := w.repo.MoveToDLQ(ctx, task.ID, ErrHandlerNotFound.Error()+": "+task.TaskName); err != nil {
		return fmt.Errorf("failed to move task %s to DLQ: %w", task.ID, err)
	}
	return ErrHandlerNotFound
}

func (w *Worker) handleTaskFailure(ctx context.Context, task *Task, execErr error, duration time.Duration) error {
	w.log.Error("task failed",
		logger.TaskID(task.ID),
		slog.String("task_name", task.TaskName),
		slog.Int("retry_count", int(task.RetryCount)),
		slog.Int("max_retries", int(task.MaxRetries)),
		logger.Duration(duration),
		logger.Error(execErr))

	if task.RetryCount >= task.MaxRetries {
		if err := w.repo.MoveToDLQ(ctx, task.ID, execErr.Error()); err != nil {
			return fmt.Errorf("failed to move task %s to DLQ after max retries: %w", task.ID, err)
		}
		w.log.Warn("task moved to dead letter queue",
			logger.TaskID(task.ID),
			slog.String("task_name", task.TaskName))
		return nil
	}

	if err := w.repo.FailTask(ctx, task.ID, execErr.Error()); err != nil {
		return fmt.Errorf("failed to update task %s status to failed: %w", task.ID, err)
	}
	return nil
}

// ID returns the worker identifier recorded in task locks.
func (w *Worker) ID() string {
	return w.workerID
}
