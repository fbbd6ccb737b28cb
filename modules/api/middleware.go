package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/filemanager/handler"
	"github.com/dmitrymomot/filemanager/pkg/clientip"
	"github.com/dmitrymomot/filemanager/pkg/logger"
	"github.com/dmitrymomot/filemanager/pkg/ratelimiter"
)

// accessLog writes one record per request after it completes.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("ip", clientip.FromContext(r.Context())),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
				logger.Component("http"),
			)
		})
	}
}

// credentialLimit gives route its own per-IP bucket. A nil limiter disables it.
func credentialLimit(limiter ratelimiter.RateLimiter, route string, eh handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(limiter,
		ratelimiter.Composite(ratelimiter.Static(route), clientip.KeyFunc),
		ratelimiter.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			eh(handler.NewContext(w, r), err)
		}),
	)
}
