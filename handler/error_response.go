package handler

import "net/http"

type errorResponse struct {
	err error
}

// Error hands err to the configured error handler, which picks the status
// code and body.
func Error(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return errorResponse{err: err}
}

func (e errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.err
}
