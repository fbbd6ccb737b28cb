// Package handler provides type-safe HTTP request handling for JSON APIs.
//
// Handlers are generic functions that receive a bound request struct and
// return a Response:
//
//	type ShowFileRequest struct {
//		ID string `path:"id"`
//	}
//
//	func showFile(ctx handler.Context, req ShowFileRequest) handler.Response {
//		view, err := files.Show(ctx, auth.UserIDFromContext(ctx), req.ID)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(view)
//	}
//
//	r.Get("/files/{id}", handler.Wrap(showFile,
//		handler.WithBinders[handler.Context, ShowFileRequest](binder.Path(chi.URLParam)),
//	))
//
// # Responses
//
//	handler.JSON(v)                                   // 200 with v as the body
//	handler.JSON(v, handler.WithJSONStatus(201))      // custom status
//	handler.Empty()                                   // 204
//	handler.Stream("image/png", body)                 // raw bytes
//	handler.Error(err)                                // delegated to the error handler
//
// # Errors
//
// Binding failures, render failures and Error responses go to the configured
// ErrorHandler. NewErrorHandler classifies them with optional ErrorMappers,
// HTTPError values and binder sentinels, logs them with the request id, and
// writes {"error": "<message>"}. Anything unrecognized becomes a 500.
//
// # Decorators
//
// Decorators wrap a HandlerFunc for cross-cutting concerns. The first
// decorator passed to WithDecorators is the outermost.
package handler
