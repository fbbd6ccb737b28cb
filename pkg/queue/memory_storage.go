package queue

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// StorageOption configures a queue storage.
type StorageOption func(*storageOptions)

type storageOptions struct {
	retryBackoff time.Duration
}

// WithRetryBackoff sets the base delay between retries; the n-th retry
// waits n*d. Default is 30s.
func WithRetryBackoff(d time.Duration) StorageOption {
	return func(o *storageOptions) {
		if d >= 0 {
			o.retryBackoff = d
		}
	}
}

func newStorageOptions(opts []StorageOption) storageOptions {
	o := storageOptions{retryBackoff: 30 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MemoryStorage implements the queue repositories in memory for tests and
// single-process development.
type MemoryStorage struct {
	mu    sync.Mutex
	opts  storageOptions
	tasks map[string]*Task
	order []string
	dlq   []DeadTask
}

// NewMemoryStorage creates a new in-memory storage implementation.
func NewMemoryStorage(opts ...StorageOption) *MemoryStorage {
	return &MemoryStorage{
		opts:  newStorageOptions(opts),
		tasks: make(map[string]*Task),
	}
}

func (ms *MemoryStorage) CreateTask(ctx context.Context, task *Task) error {
	if task == nil {
		return ErrPayloadNil
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.tasks[task.ID]; exists {
		return fmt.Errorf("%w: task %s already exists", ErrStorage, task.ID)
	}

	c := *task
	ms.tasks[task.ID] = &c
	ms.order = append(ms.order, task.ID)
	return nil
}

// ClaimTask picks the highest priority ready task, oldest schedule first.
// Processing tasks whose lock expired are claimable again.
func (ms *MemoryStorage) ClaimTask(ctx context.Context, workerID string, queues []string, lockDuration time.Duration) (*Task, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	var best *Task
	for _, id := range ms.order {
		task := ms.tasks[id]
		if !claimable(task, queues, now) {
			continue
		}
		if best == nil ||
			task.Priority > best.Priority ||
			(task.Priority == best.Priority && task.ScheduledAt.Before(best.ScheduledAt)) {
			best = task
		}
	}

	if best == nil {
		return nil, ErrNoTaskToClaim
	}

	lockUntil := now.Add(lockDuration)
	best.Status = TaskStatusProcessing
	best.LockedUntil = &lockUntil
	best.LockedBy = workerID

	c := *best
	return &c, nil
}

func claimable(task *Task, queues []string, now time.Time) bool {
	if !slices.Contains(queues, task.Queue) || task.ScheduledAt.After(now) {
		return false
	}
	switch task.Status {
	case TaskStatusPending:
		return true
	case TaskStatusProcessing:
		return task.LockedUntil != nil && task.LockedUntil.Before(now)
	default:
		return false
	}
}

func (ms *MemoryStorage) CompleteTask(ctx context.Context, taskID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, err := ms.processing(taskID)
	if err != nil {
		return err
	}

	now := time.Now()
	task.Status = TaskStatusCompleted
	task.ProcessedAt = &now
	task.LockedUntil = nil
	task.LockedBy = ""
	return nil
}

func (ms *MemoryStorage) FailTask(ctx context.Context, taskID string, errMsg string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, err := ms.processing(taskID)
	if err != nil {
		return err
	}

	task.RetryCount++
	task.Error = errMsg
	task.Status = TaskStatusPending
	task.LockedUntil = nil
	task.LockedBy = ""
	task.ScheduledAt = time.Now().Add(retryDelay(ms.opts.retryBackoff, task.RetryCount))
	return nil
}

func (ms *MemoryStorage) MoveToDLQ(ctx context.Context, taskID string, errMsg string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, ok := ms.tasks[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	ms.dlq = append(ms.dlq, *newDeadTask(task, errMsg, time.Now()))
	delete(ms.tasks, taskID)
	ms.order = slices.DeleteFunc(ms.order, func(id string) bool { return id == taskID })
	return nil
}

func (ms *MemoryStorage) processing(taskID string) (*Task, error) {
	task, ok := ms.tasks[taskID]
	if !ok || task.Status != TaskStatusProcessing {
		return nil, fmt.Errorf("%w: %s is not processing", ErrTaskNotFound, taskID)
	}
	return task, nil
}

// Tasks returns copies of the tasks still in the queue, in creation order.
func (ms *MemoryStorage) Tasks() []Task {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	out := make([]Task, 0, len(ms.order))
	for _, id := range ms.order {
		out = append(out, *ms.tasks[id])
	}
	return out
}

// DeadTasks returns copies of the dead letter entries.
func (ms *MemoryStorage) DeadTasks() []DeadTask {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return slices.Clone(ms.dlq)
}
