package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response.
var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError is an error with the status code and message sent to the client.
type HTTPError struct {
	Code    int
	Message string
}

func (e HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Message: http.StatusText(http.StatusBadRequest)}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Message: "Not found"}
	ErrUnsupportedMedia    = HTTPError{Code: http.StatusUnsupportedMediaType, Message: http.StatusText(http.StatusUnsupportedMediaType)}
	ErrEntityTooLarge      = HTTPError{Code: http.StatusRequestEntityTooLarge, Message: http.StatusText(http.StatusRequestEntityTooLarge)}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)}
)
