// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers so log keys stay consistent across the service.
//
// New picks a text or JSON handler, attaches static attributes and wraps the
// handler so that context extractors pull request-scoped values such as
// the request id out of the context on every call:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "filemanager-api"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "file created", logger.UserID(uid), logger.FileID(fid))
//
// Error, UserID and FileID return an empty attribute for zero values, so they
// can be passed unconditionally.
package logger
