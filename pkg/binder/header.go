package binder

import "net/http"

// Header binds request headers to fields tagged `header:"Name"`.
func Header() Func {
	return func(r *http.Request, v any) error {
		return bindFields(v, "header", func(name string) []string {
			return r.Header.Values(name)
		}, ErrFailedToParseHeader)
	}
}
