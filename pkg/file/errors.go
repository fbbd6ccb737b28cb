package file

import "errors"

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrFileNotFound  = errors.New("file not found")
	ErrInvalidConfig = errors.New("invalid configuration")

	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrFailedToOpenFile        = errors.New("failed to open file")
	ErrFailedToDeleteFile      = errors.New("failed to delete file")
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")

	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
