package handler

import (
	"io"
	"net/http"
)

type streamResponse struct {
	contentType string
	body        io.ReadCloser
}

// Stream copies body to the client with the given content type and closes it.
func Stream(contentType string, body io.ReadCloser) Response {
	return streamResponse{contentType: contentType, body: body}
}

func (s streamResponse) Render(w http.ResponseWriter, r *http.Request) error {
	defer func() { _ = s.body.Close() }()

	w.Header().Set("Content-Type", s.contentType)
	w.WriteHeader(http.StatusOK)
	// Status is already sent; copy errors cannot reach the client.
	_, _ = io.Copy(w, s.body)
	return nil
}
