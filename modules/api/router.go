package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/filemanager/handler"
	"github.com/dmitrymomot/filemanager/pkg/binder"
	"github.com/dmitrymomot/filemanager/pkg/clientip"
	"github.com/dmitrymomot/filemanager/pkg/httpserver"
	"github.com/dmitrymomot/filemanager/pkg/logger"
	"github.com/dmitrymomot/filemanager/pkg/ratelimiter"
	"github.com/dmitrymomot/filemanager/pkg/requestid"
	"github.com/dmitrymomot/filemanager/svc/auth"
	"github.com/dmitrymomot/filemanager/svc/files"
	"github.com/dmitrymomot/filemanager/svc/status"
)

// RouterOptions holds the services behind the API. All of them are required
// except Logger, HealthChecks and CredentialLimiter.
type RouterOptions struct {
	Auth   *auth.Service
	Gate   *auth.Gate
	Files  *files.Service
	Status *status.Service

	Logger       *slog.Logger
	HealthChecks []func(context.Context) error

	// CredentialLimiter throttles /connect and POST /users per client IP.
	CredentialLimiter ratelimiter.RateLimiter
}

type api struct {
	auth   *auth.Service
	gate   *auth.Gate
	files  *files.Service
	status *status.Service
}

// Router creates the HTTP API.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	err := srv.Run(ctx, api.Router(api.RouterOptions{...}))
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	a := &api{auth: opts.Auth, gate: opts.Gate, files: opts.Files, status: opts.Status}
	eh := handler.NewErrorHandler(log, MapError)
	requireUser := a.gate.RequireUser(eh)
	optionalUser := a.gate.OptionalUser(eh)
	throttle := func(route string) func(http.Handler) http.Handler {
		return credentialLimit(opts.CredentialLimiter, route, eh)
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		accessLog(log),
		middleware.Recoverer,
	)

	r.Get("/health", httpserver.HealthCheckHandler(log, opts.HealthChecks...))

	r.Get("/status", handler.Wrap(a.getStatus,
		handler.WithErrorHandler[handler.Context, struct{}](eh),
	))
	r.Get("/stats", handler.Wrap(a.getStats,
		handler.WithErrorHandler[handler.Context, struct{}](eh),
	))

	r.With(throttle("register")).Post("/users", handler.Wrap(a.register,
		handler.WithBinders[handler.Context, RegisterRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, RegisterRequest](eh),
	))
	r.With(throttle("connect")).Get("/connect", handler.Wrap(a.connect,
		handler.WithBinders[handler.Context, ConnectRequest](binder.Header()),
		handler.WithErrorHandler[handler.Context, ConnectRequest](eh),
	))
	r.With(requireUser).Get("/disconnect", handler.Wrap(a.disconnect,
		handler.WithErrorHandler[handler.Context, struct{}](eh),
	))
	r.With(requireUser).Get("/users/me", handler.Wrap(a.me,
		handler.WithErrorHandler[handler.Context, struct{}](eh),
	))

	r.Route("/files", func(r chi.Router) {
		r.With(optionalUser).Get("/{id}/data", handler.Wrap(a.fileData,
			handler.WithBinders[handler.Context, FileDataRequest](binder.Path(chi.URLParam), binder.Query()),
			handler.WithErrorHandler[handler.Context, FileDataRequest](eh),
		))

		r.Group(func(r chi.Router) {
			r.Use(requireUser)

			r.Post("/", handler.Wrap(a.createFile,
				handler.WithBinders[handler.Context, files.CreateInput](binder.JSON()),
				handler.WithErrorHandler[handler.Context, files.CreateInput](eh),
			))
			r.Get("/", handler.Wrap(a.listFiles,
				handler.WithBinders[handler.Context, ListFilesRequest](binder.Query()),
				handler.WithErrorHandler[handler.Context, ListFilesRequest](eh),
			))
			r.Get("/{id}", handler.Wrap(a.showFile,
				handler.WithBinders[handler.Context, FileRequest](binder.Path(chi.URLParam)),
				handler.WithErrorHandler[handler.Context, FileRequest](eh),
			))
			r.Put("/{id}/publish", handler.Wrap(a.publishFile,
				handler.WithBinders[handler.Context, FileRequest](binder.Path(chi.URLParam)),
				handler.WithErrorHandler[handler.Context, FileRequest](eh),
			))
			r.Put("/{id}/unpublish", handler.Wrap(a.unpublishFile,
				handler.WithBinders[handler.Context, FileRequest](binder.Path(chi.URLParam)),
				handler.WithErrorHandler[handler.Context, FileRequest](eh),
			))
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		eh(handler.NewContext(w, r), errNotFound)
	})

	return r
}
