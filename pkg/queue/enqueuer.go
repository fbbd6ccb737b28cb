package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EnqueuerRepository defines the interface for task creation.
type EnqueuerRepository interface {
	CreateTask(ctx context.Context, task *Task) error
}

// EnqueuerOption is a functional option for configuring an Enqueuer.
type EnqueuerOption func(*enqueuerOptions)

type enqueuerOptions struct {
	defaultQueue      string
	defaultPriority   Priority
	defaultMaxRetries int8
}

// WithDefaultQueue sets the default queue name.
func WithDefaultQueue(queue string) EnqueuerOption {
	return func(o *enqueuerOptions) {
		if queue != "" {
			o.defaultQueue = queue
		}
	}
}

// WithDefaultPriority sets the default priority.
func WithDefaultPriority(priority Priority) EnqueuerOption {
	return func(o *enqueuerOptions) {
		if priority.Valid() {
			o.defaultPriority = priority
		}
	}
}

// WithDefaultMaxRetries sets how many times a failed task is retried (0-10).
func WithDefaultMaxRetries(n int8) EnqueuerOption {
	return func(o *enqueuerOptions) {
		if n >= 0 && n <= 10 {
			o.defaultMaxRetries = n
		}
	}
}

// EnqueueOption is a functional option for the Enqueue method.
type EnqueueOption func(*enqueueOptions)

type enqueueOptions struct {
	queue      string
	priority   Priority
	maxRetries int8
	delay      time.Duration
	taskName   string
}

// WithQueue sets the queue for the task.
func WithQueue(queue string) EnqueueOption {
	return func(o *enqueueOptions) {
		if queue != "" {
			o.queue = queue
		}
	}
}

// WithPriority sets the priority for the task.
func WithPriority(priority Priority) EnqueueOption {
	return func(o *enqueueOptions) {
		o.priority = priority
	}
}

// WithMaxRetries sets the maximum number of retries (0-10).
func WithMaxRetries(maxRetries int8) EnqueueOption {
	return func(o *enqueueOptions) {
		if maxRetries >= 0 && maxRetries <= 10 {
			o.maxRetries = maxRetries
		}
	}
}

// WithDelay postpones the first attempt.
func WithDelay(delay time.Duration) EnqueueOption {
	return func(o *enqueueOptions) {
		if delay > 0 {
			o.delay = delay
		}
	}
}

// WithTaskName overrides the name the worker routes the task by.
func WithTaskName(name string) EnqueueOption {
	return func(o *enqueueOptions) {
		if name != "" {
			o.taskName = name
		}
	}
}

// Enqueuer serializes payloads into tasks and stores them.
type Enqueuer struct {
	repo EnqueuerRepository
	opts enqueuerOptions
}

// NewEnqueuer creates a new Enqueuer.
func NewEnqueuer(repo EnqueuerRepository, opts ...EnqueuerOption) (*Enqueuer, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}

	o := enqueuerOptions{
		defaultQueue:      DefaultQueueName,
		defaultPriority:   PriorityDefault,
		defaultMaxRetries: 3,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Enqueuer{repo: repo, opts: o}, nil
}

// Enqueue adds a new task to the queue.
func (e *Enqueuer) Enqueue(ctx context.Context, payload any, opts ...EnqueueOption) error {
	if payload == nil {
		return ErrPayloadNil
	}

	o := enqueueOptions{
		queue:      e.opts.defaultQueue,
		priority:   e.opts.defaultPriority,
		maxRetries: e.opts.defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.priority.Valid() {
		return ErrInvalidPriority
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload of type %T: %w", payload, err)
	}

	name := o.taskName
	if name == "" {
		name = taskName(payload)
	}

	now := time.Now()
	task := &Task{
		ID:          uuid.NewString(),
		Queue:       o.queue,
		TaskName:    name,
		Payload:     data,
		Status:      TaskStatusPending,
		Priority:    o.priority,
		MaxRetries:  o.maxRetries,
		ScheduledAt: now.Add(o.delay),
		CreatedAt:   now,
	}

	if err := e.repo.CreateTask(ctx, task); err != nil {
		return fmt.Errorf("failed to create task %q in queue %q: %w", task.TaskName, task.Queue, err)
	}

	return nil
}
