package queue

import (
	"context"
	"encoding/json"
	"fmt"
)

// Handler processes the raw payload of one task name.
type Handler interface {
	Name() string
	Handle(ctx context.Context, payload json.RawMessage) error
}

// TaskHandlerFunc handles a decoded payload.
type TaskHandlerFunc[T any] func(ctx context.Context, payload T) error

// NewTaskHandler builds a Handler that decodes JSON into T. It is routed by
// T's task name, so it matches tasks enqueued with a T payload.
func NewTaskHandler[T any](handler TaskHandlerFunc[T]) Handler {
	var payload T
	return &taskHandler[T]{
		name:    taskName(payload),
		handler: handler,
	}
}

type taskHandler[T any] struct {
	name    string
	handler TaskHandlerFunc[T]
}

func (h *taskHandler[T]) Name() string {
	return h.name
}

func (h *taskHandler[T]) Handle(ctx context.Context, payload json.RawMessage) error {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return fmt.Errorf("decode %s payload: %w", h.name, err)
	}
	return h.handler(ctx, t)
}
