// Command server runs the file manager HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/filemanager/modules/api"
	"github.com/dmitrymomot/filemanager/pkg/config"
	"github.com/dmitrymomot/filemanager/pkg/file"
	"github.com/dmitrymomot/filemanager/pkg/httpserver"
	"github.com/dmitrymomot/filemanager/pkg/logger"
	"github.com/dmitrymomot/filemanager/pkg/mongo"
	"github.com/dmitrymomot/filemanager/pkg/queue"
	"github.com/dmitrymomot/filemanager/pkg/ratelimiter"
	"github.com/dmitrymomot/filemanager/pkg/redis"
	"github.com/dmitrymomot/filemanager/pkg/requestid"
	"github.com/dmitrymomot/filemanager/pkg/session"
	"github.com/dmitrymomot/filemanager/svc/auth"
	"github.com/dmitrymomot/filemanager/svc/files"
	"github.com/dmitrymomot/filemanager/svc/status"
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
		appCfg     appConfig
		httpCfg    httpserver.Config
		mongoCfg   mongo.Config
		redisCfg   redis.Config
		fileCfg    file.Config
		queueCfg   queue.Config
		sessionCfg session.Config
		limitCfg   ratelimiter.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&fileCfg)
	config.MustLoad(&queueCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&limitCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name+"-api"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	db, err := mongo.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() { _ = rdb.Close() }()

	blobs, err := file.New(ctx, fileCfg)
	if err != nil {
		return fmt.Errorf("blob storage: %w", err)
	}

	tasks := queue.NewMongoStorage(db, queue.WithRetryBackoff(queueCfg.RetryBackoff))
	users := auth.NewMongoStorage(db)
	records := files.NewMongoStorage(db)
	for name, ensure := range map[string]func(context.Context) error{
		"tasks": tasks.EnsureIndexes,
		"users": users.EnsureIndexes,
		"files": records.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return fmt.Errorf("%s indexes: %w", name, err)
		}
	}

	enqueuer, err := queue.NewEnqueuer(tasks, queueCfg.EnqueuerOptions()...)
	if err != nil {
		return fmt.Errorf("enqueuer: %w", err)
	}

	sessions := session.NewRedisStore(rdb, session.WithKeyPrefix(sessionCfg.KeyPrefix))
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(rdb), limitCfg)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	redisCheck := redis.Healthcheck(rdb)
	mongoCheck := mongo.Healthcheck(db.Client())

	router := api.Router(api.RouterOptions{
		Auth: auth.NewService(users, sessions,
			auth.WithSessionTTL(sessionCfg.TTL),
			auth.WithEnqueuer(enqueuer),
			auth.WithLogger(log),
		),
		Gate: auth.NewGate(sessions),
		Files: files.NewService(records, blobs,
			files.WithEnqueuer(enqueuer),
			files.WithLogger(log),
		),
		Status:       status.NewService(redisCheck, mongoCheck, users.CountUsers, records.CountFiles),
		Logger:       log,
		HealthChecks: []func(context.Context) error{redisCheck, mongoCheck},

		CredentialLimiter: limiter,
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, router)
	})

	return g.Wait()
}
