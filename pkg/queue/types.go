package queue

import (
	"fmt"
	"strings"
	"time"
)

// DefaultQueueName is the queue used when none is specified.
const DefaultQueueName = "default"

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Priority represents task priority (0-100, higher is more important).
type Priority int8

const (
	PriorityMin     Priority = 0
	PriorityLow     Priority = 25
	PriorityMedium  Priority = 50
	PriorityHigh    Priority = 75
	PriorityMax     Priority = 100
	PriorityDefault Priority = PriorityMedium
)

// Valid checks if the priority is within valid range.
func (p Priority) Valid() bool {
	return p >= PriorityMin && p <= PriorityMax
}

// Named is implemented by payloads that carry a stable task name.
// Payloads without it are routed by their Go type name.
type Named interface {
	TaskName() string
}

// Task is a unit of work stored in the queue.
type Task struct {
	ID          string     `json:"id" bson:"_id"`
	Queue       string     `json:"queue" bson:"queue"`
	TaskName    string     `json:"task_name" bson:"task_name"`
	Payload     []byte     `json:"payload,omitempty" bson:"payload,omitempty"`
	Status      TaskStatus `json:"status" bson:"status"`
	Priority    Priority   `json:"priority" bson:"priority"`
	RetryCount  int8       `json:"retry_count" bson:"retry_count"`
	MaxRetries  int8       `json:"max_retries" bson:"max_retries"`
	ScheduledAt time.Time  `json:"scheduled_at" bson:"scheduled_at"`
	LockedUntil *time.Time `json:"locked_until,omitempty" bson:"locked_until,omitempty"`
	LockedBy    string     `json:"locked_by,omitempty" bson:"locked_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
	Error       string     `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// DeadTask is a task that exhausted its retries or had no handler.
// It is kept for manual inspection and requeueing.
type DeadTask struct {
	ID         string    `json:"id" bson:"_id"`
	TaskID     string    `json:"task_id" bson:"task_id"`
	Queue      string    `json:"queue" bson:"queue"`
	TaskName   string    `json:"task_name" bson:"task_name"`
	Payload    []byte    `json:"payload,omitempty" bson:"payload,omitempty"`
	Priority   Priority  `json:"priority" bson:"priority"`
	Error      string    `json:"error" bson:"error"`
	RetryCount int8      `json:"retry_count" bson:"retry_count"`
	FailedAt   time.Time `json:"failed_at" bson:"failed_at"`
}

func newDeadTask(task *Task, errMsg string, now time.Time) *DeadTask {
	return &DeadTask{
		ID:         task.ID,
		TaskID:     task.ID,
		Queue:      task.Queue,
		TaskName:   task.TaskName,
		Payload:    task.Payload,
		Priority:   task.Priority,
		Error:      errMsg,
		RetryCount: task.RetryCount,
		FailedAt:   now,
	}
}

// retryDelay grows linearly with the number of failed attempts.
func retryDelay(base time.Duration, retryCount int8) time.Duration {
	return time.Duration(retryCount) * base
}

func taskName(payload any) string {
	if n, ok := payload.(Named); ok {
		return n.TaskName()
	}
	return strings.TrimLeft(fmt.Sprintf("%T", payload), "*")
}
