package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filemanager/pkg/queue"
)

func newTestWorker(t *testing.T, storage *queue.MemoryStorage, handlers ...queue.Handler) *queue.Worker {
	t.Helper()
	w, err := queue.NewWorker(storage,
		queue.WithPullInterval(5*time.Millisecond),
		queue.WithMaxConcurrentTasks(2),
	)
	require.NoError(t, err)
	w.RegisterHandlers(handlers...)
	return w
}

func enqueue(t *testing.T, storage *queue.MemoryStorage, payload any, opts ...queue.EnqueueOption) {
	t.Helper()
	e, err := queue.NewEnqueuer(storage)
	require.NoError(t, err)
	require.NoError(t, e.Enqueue(context.Background(), payload, opts...))
}

func TestWorker_Lifecycle(t *testing.T) {
	t.Parallel()

	_, err := queue.NewWorker(nil)
	assert.ErrorIs(t, err, queue.ErrRepositoryNil)

	storage := queue.NewMemoryStorage()
	w, err := queue.NewWorker(storage)
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID())

	assert.ErrorIs(t, w.Start(context.Background()), queue.ErrNoHandlers)
	assert.ErrorIs(t, w.Stop(), queue.ErrWorkerNotStarted)

	w.RegisterHandlers(queue.NewTaskHandler(func(ctx context.Context, p plainPayload) error { return nil }))
	require.NoError(t, w.Start(context.Background()))
	assert.ErrorIs(t, w.Start(context.Background()), queue.ErrWorkerStarted)
	require.NoError(t, w.Stop())
}

func TestWorker_Processing(t *testing.T) {
	t.Parallel()

	t.Run("completes tasks", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		var seen atomic.Int32
		w := newTestWorker(t, storage, queue.NewTaskHandler(func(ctx context.Context, p namedPayload) error {
			seen.Add(1)
			return nil
		}))

		for range 5 {
			enqueue(t, storage, namedPayload{ID: "x"})
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx)() }()

		require.Eventually(t, func() bool { return seen.Load() == 5 }, 2*time.Second, 5*time.Millisecond)
		cancel()
		require.NoError(t, <-done)

		for _, task := range storage.Tasks() {
			assert.Equal(t, queue.TaskStatusCompleted, task.Status)
		}
	})

	t.Run("retries then moves to dlq", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage(queue.WithRetryBackoff(0))

		var attempts atomic.Int32
		w := newTestWorker(t, storage, queue.NewTaskHandler(func(ctx context.Context, p namedPayload) error {
			attempts.Add(1)
			return errors.New("still broken")
		}))
		enqueue(t, storage, namedPayload{ID: "x"}, queue.WithMaxRetries(2))

		require.NoError(t, w.Start(context.Background()))
		require.Eventually(t, func() bool { return len(storage.DeadTasks()) == 1 }, 2*time.Second, 5*time.Millisecond)
		require.NoError(t, w.Stop())

		assert.Equal(t, int32(3), attempts.Load())
		dead := storage.DeadTasks()[0]
		assert.Equal(t, "still broken", dead.Error)
		assert.Equal(t, int8(2), dead.RetryCount)
		assert.Empty(t, storage.Tasks())
	})

	t.Run("panic counts as failure", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		w := newTestWorker(t, storage, queue.NewTaskHandler(func(ctx context.Context, p namedPayload) error {
			panic("kaboom")
		}))
		enqueue(t, storage, namedPayload{ID: "x"}, queue.WithMaxRetries(0))

		require.NoError(t, w.Start(context.Background()))
		require.Eventually(t, func() bool { return len(storage.DeadTasks()) == 1 }, 2*time.Second, 5*time.Millisecond)
		require.NoError(t, w.Stop())

		assert.Contains(t, storage.DeadTasks()[0].Error, "kaboom")
	})

	t.Run("missing handler goes to dlq", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		w := newTestWorker(t, storage, queue.NewTaskHandler(func(ctx context.Context, p namedPayload) error { return nil }))
		enqueue(t, storage, plainPayload{Message: "orphan"})

		require.NoError(t, w.Start(context.Background()))
		require.Eventually(t, func() bool { return len(storage.DeadTasks()) == 1 }, 2*time.Second, 5*time.Millisecond)
		require.NoError(t, w.Stop())

		dead := storage.DeadTasks()[0]
		assert.Equal(t, "queue_test.plainPayload", dead.TaskName)
		assert.Equal(t, int8(0), dead.RetryCount)
	})
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	cfg := queue.Config{Queue: "files", PollInterval: time.Millisecond, LockTimeout: time.Minute, MaxRetries: 1, MaxConcurrentTasks: 3}
	storage := queue.NewMemoryStorage()

	e, err := queue.NewEnqueuer(storage, cfg.EnqueuerOptions()...)
	require.NoError(t, err)
	require.NoError(t, e.Enqueue(context.Background(), namedPayload{ID: "1"}))
	task := storage.Tasks()[0]
	assert.Equal(t, "files", task.Queue)
	assert.Equal(t, int8(1), task.MaxRetries)

	_, err = queue.NewWorker(storage, cfg.WorkerOptions()...)
	require.NoError(t, err)
}
