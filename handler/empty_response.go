package handler

import "net/http"

// noContent answers with a bare 204.
type noContent struct{}

func (noContent) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Empty returns a 204 No Content response.
func Empty() Response {
	return noContent{}
}
