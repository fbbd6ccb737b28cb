package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/filemanager/handler"
	"github.com/dmitrymomot/filemanager/pkg/ratelimiter"
	"github.com/dmitrymomot/filemanager/svc/auth"
	"github.com/dmitrymomot/filemanager/svc/files"
)

var (
	errUnauthorized   = handler.ErrUnauthorized
	errNotFound       = handler.ErrNotFound
	errMissingEmail   = handler.NewHTTPError(http.StatusBadRequest, "Missing email")
	errMissingPass    = handler.NewHTTPError(http.StatusBadRequest, "Missing password")
	errAlreadyExists  = handler.NewHTTPError(http.StatusBadRequest, "Already exist")
	errMissingName    = handler.NewHTTPError(http.StatusBadRequest, "Missing name")
	errMissingType    = handler.NewHTTPError(http.StatusBadRequest, "Missing type")
	errMissingData    = handler.NewHTTPError(http.StatusBadRequest, "Missing data")
	errParentNotFound = handler.NewHTTPError(http.StatusBadRequest, "Parent not found")
	errParentNotDir   = handler.NewHTTPError(http.StatusBadRequest, "Parent is not a folder")
	errFolderContent  = handler.NewHTTPError(http.StatusBadRequest, "A folder doesn't have content")
	errTooManyReqs    = handler.NewHTTPError(http.StatusTooManyRequests, "Too Many Requests")
)

var errorTable = []struct {
	target error
	http   handler.HTTPError
}{
	{auth.ErrUnauthorized, errUnauthorized},
	{files.ErrUnauthorized, errUnauthorized},
	{auth.ErrMissingEmail, errMissingEmail},
	{auth.ErrMissingPassword, errMissingPass},
	{auth.ErrAlreadyExists, errAlreadyExists},
	{files.ErrMissingName, errMissingName},
	{files.ErrMissingType, errMissingType},
	{files.ErrMissingData, errMissingData},
	{files.ErrParentNotFound, errParentNotFound},
	{files.ErrParentNotFolder, errParentNotDir},
	{files.ErrNotFound, errNotFound},
	{files.ErrFolderHasNoContent, errFolderContent},
	{ratelimiter.ErrLimitExceeded, errTooManyReqs},
}

// MapError translates service errors into client responses.
func MapError(err error) (handler.HTTPError, bool) {
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return e.http, true
		}
	}
	return handler.HTTPError{}, false
}
