package binder

import "net/http"

// Func populates v from the request. Handlers run binders in order, so later
// binders overwrite fields set by earlier ones.
type Func func(r *http.Request, v any) error
