package files

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("file not found")
	ErrFolderHasNoContent = errors.New("folder has no content")
)

// Input errors returned by Create.
var (
	ErrMissingName     = errors.New("missing name")
	ErrMissingType     = errors.New("missing type")
	ErrMissingData     = errors.New("missing data")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")
)
