package thumbnail

import "errors"

var (
	ErrMissingFileID = errors.New("missing fileId")
	ErrMissingUserID = errors.New("missing userId")
	ErrFileNotFound  = errors.New("file not found")
	ErrUnsupported   = errors.New("unsupported image format")
)
