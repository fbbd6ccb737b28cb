package binder

import "net/http"

// Query binds URL query parameters to fields tagged `query:"name"`.
//
//	type ListRequest struct {
//	    ParentID string `query:"parentId"`
//	    Page     string `query:"page"`
//	}
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindFields(v, "query", func(name string) []string {
			return r.URL.Query()[name]
		}, ErrFailedToParseQuery)
	}
}
