// Package binder fills request structs from HTTP requests.
//
// Each binder reads one source and only touches fields carrying its tag:
//
//	type CreateFileRequest struct {
//	    Name     string `json:"name"`
//	    Type     string `json:"type"`
//	}
//
//	type ShowFileRequest struct {
//	    ID string `path:"id"`
//	}
//
//	type ListFilesRequest struct {
//	    ParentID string `query:"parentId"`
//	    Page     string `query:"page"`
//	}
//
// JSON decodes the body, Query reads URL parameters, Path delegates to the
// router (binder.Path(chi.URLParam)) and Header reads request headers.
// Scalar fields, pointers and slices of scalars are supported; slices also
// accept comma separated values.
//
// Errors wrap a per-source sentinel (ErrFailedToParseJSON, ErrFailedToParseQuery
// and so on) so handlers can map them to 400 responses.
package binder
