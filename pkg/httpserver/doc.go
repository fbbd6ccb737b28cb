// Package httpserver runs an http.Handler with graceful, context driven
// shutdown and provides liveness/readiness probe handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    return err
//	}
//
// Run returns when ctx is canceled; the process entry point owns signal
// handling (signal.NotifyContext) so the API and worker behave the same way.
package httpserver
