package config

import "errors"

var (
	ErrNilPointer    = errors.New("config: target is a nil pointer")
	ErrParsingConfig = errors.New("config: cannot parse environment")
)
