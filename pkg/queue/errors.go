package queue

import "errors"

var (
	// ErrRepositoryNil is returned when a nil repository is provided.
	ErrRepositoryNil = errors.New("repository cannot be nil")

	// ErrPayloadNil is returned when attempting to enqueue a nil payload.
	ErrPayloadNil = errors.New("payload cannot be nil")

	// ErrInvalidPriority is returned when priority is outside valid range.
	ErrInvalidPriority = errors.New("priority must be between 0 and 100")

	// ErrHandlerNotFound is returned when no handler is registered for a task.
	ErrHandlerNotFound = errors.New("no handler registered for task type")

	// ErrNoHandlers is returned when worker has no handlers registered.
	ErrNoHandlers = errors.New("no task handlers registered")

	// ErrNoTaskToClaim is returned by ClaimTask when nothing is ready.
	ErrNoTaskToClaim = errors.New("no task to claim")

	// ErrTaskNotFound is returned when a task id is unknown or not in the expected state.
	ErrTaskNotFound = errors.New("task not found")

	// ErrWorkerStarted is returned by Start on a running worker.
	ErrWorkerStarted = errors.New("worker already started")

	// ErrWorkerNotStarted is returned by Stop on an idle worker.
	ErrWorkerNotStarted = errors.New("worker not started")

	// ErrStorage wraps backend failures of a repository.
	ErrStorage = errors.New("queue storage failure")
)
