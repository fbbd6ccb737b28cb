// Command worker processes background jobs: image thumbnails and welcome messages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/filemanager/pkg/config"
	"github.com/dmitrymomot/filemanager/pkg/file"
	"github.com/dmitrymomot/filemanager/pkg/logger"
	"github.com/dmitrymomot/filemanager/pkg/mongo"
	"github.com/dmitrymomot/filemanager/pkg/queue"
	"github.com/dmitrymomot/filemanager/svc/auth"
	"github.com/dmitrymomot/filemanager/svc/files"
	"github.com/dmitrymomot/filemanager/svc/thumbnail"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"files-manager"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg   appConfig
		mongoCfg mongo.Config
		fileCfg  file.Config
		queueCfg queue.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&fileCfg)
	config.MustLoad(&queueCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Env, appCfg.Name+"-worker"))
	logger.SetAsDefault(log)

	db, err := mongo.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	blobs, err := file.New(ctx, fileCfg)
	if err != nil {
		return fmt.Errorf("blob storage: %w", err)
	}

	tasks := queue.NewMongoStorage(db, queue.WithRetryBackoff(queueCfg.RetryBackoff))
	if err := tasks.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("tasks indexes: %w", err)
	}

	worker, err := queue.NewWorker(tasks, append(queueCfg.WorkerOptions(), queue.WithWorkerLogger(log))...)
	if err != nil {
		return fmt.Errorf("worker: %w", err)
	}
	worker.RegisterHandlers(
		thumbnail.NewGenerator(files.NewMongoStorage(db), blobs, thumbnail.WithLogger(log)).Handler(),
		auth.NewWelcomeHandler(auth.NewMongoStorage(db), log),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(worker.Run(ctx))
	return g.Wait()
}
