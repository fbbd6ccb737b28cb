package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/filemanager/pkg/binder"
	"github.com/dmitrymomot/filemanager/pkg/logger"
	"github.com/dmitrymomot/filemanager/pkg/requestid"
)

// ErrorMapper translates a domain error into an HTTPError.
// It reports false when it does not recognize err.
type ErrorMapper func(err error) (HTTPError, bool)

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// classifyError resolves err to a status and message.
// Mappers run first, then HTTPError, then binder errors.
func classifyError(err error, mappers []ErrorMapper) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternalServerError.Code,
		Message:    ErrInternalServerError.Message,
	}

	if httpErr, ok := mapError(err, mappers); ok {
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
	}

	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

func mapError(err error, mappers []ErrorMapper) (HTTPError, bool) {
	for _, m := range mappers {
		if httpErr, ok := m(err); ok {
			return httpErr, true
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrUnsupportedMedia, true
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrEntityTooLarge, true
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath),
		errors.Is(err, binder.ErrFailedToParseHeader):
		return ErrBadRequest, true
	}

	return HTTPError{}, false
}

func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

func renderError(w http.ResponseWriter, info ErrorInfo) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(info.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorBody{Error: info.Message})
}

// NewErrorHandler creates an error handler that writes {"error": "<message>"}
// bodies. Client errors are logged at warn level, everything else at error.
// Configure it once in the router and pass it to every Wrap call.
func NewErrorHandler(log *slog.Logger, mappers ...ErrorMapper) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := classifyError(err, mappers)
		logError(log, ctx, err, info)
		renderError(ctx.ResponseWriter(), info)
	}
}
