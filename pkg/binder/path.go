package binder

import "net/http"

// Path binds path parameters to fields tagged `path:"name"` using the
// router's extractor, e.g. chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) Func {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return ErrFailedToParsePath
		}
		return bindFields(v, "path", func(name string) []string {
			if value := extractor(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrFailedToParsePath)
	}
}
