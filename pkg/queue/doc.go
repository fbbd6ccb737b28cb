// Package queue provides a storage-agnostic background task queue.
//
// It is organised around two components:
//
//   - Enqueuer adds tasks with JSON payloads to a queue.
//   - Worker claims ready tasks and dispatches them to typed handlers.
//
// Both talk to persistence through small repository interfaces.
// MongoStorage lets the API server enqueue and a separate worker process
// consume; MemoryStorage serves tests and single-process setups.
//
// # Usage
//
//	type ThumbnailJob struct {
//	    FileID string `json:"fileId"`
//	}
//
//	func (ThumbnailJob) TaskName() string { return "files.thumbnail" }
//
//	e, _ := queue.NewEnqueuer(queue.NewMongoStorage(db))
//	_ = e.Enqueue(ctx, ThumbnailJob{FileID: id})
//
//	w, _ := queue.NewWorker(storage, queue.WithMaxConcurrentTasks(4))
//	w.RegisterHandlers(queue.NewTaskHandler(func(ctx context.Context, job ThumbnailJob) error {
//	    return nil
//	}))
//	g.Go(w.Run(ctx))
//
// Payload types implementing Named must use a value receiver so the handler
// built from the zero value resolves the same name.
//
// # Retries
//
// A failing task is retried MaxRetries times with a linear backoff, then
// moved to the dead letter store together with its last error. Tasks without a
// registered handler skip retries. Handler panics count as failures.
package queue
