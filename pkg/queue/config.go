package queue

import "time"

// Config holds the configuration for the task queue.
type Config struct {
	Queue              string        `env:"QUEUE_NAME" envDefault:"default"`
	PollInterval       time.Duration `env:"QUEUE_POLL_INTERVAL" envDefault:"1s"`
	LockTimeout        time.Duration `env:"QUEUE_LOCK_TIMEOUT" envDefault:"5m"`
	RetryBackoff       time.Duration `env:"QUEUE_RETRY_BACKOFF" envDefault:"30s"`
	MaxRetries         int8          `env:"QUEUE_MAX_RETRIES" envDefault:"3"`
	MaxConcurrentTasks int           `env:"QUEUE_MAX_CONCURRENT_TASKS" envDefault:"10"`
}

// WorkerOptions translates the config into worker options.
func (c Config) WorkerOptions() []WorkerOption {
	return []WorkerOption{
		WithQueues(c.Queue),
		WithPullInterval(c.PollInterval),
		WithLockTimeout(c.LockTimeout),
		WithMaxConcurrentTasks(c.MaxConcurrentTasks),
	}
}

// EnqueuerOptions translates the config into enqueuer options.
func (c Config) EnqueuerOptions() []EnqueuerOption {
	return []EnqueuerOption{
		WithDefaultQueue(c.Queue),
		WithDefaultMaxRetries(c.MaxRetries),
	}
}
