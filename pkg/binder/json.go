package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies.
// Uploads travel base64 encoded inside the body, hence the generous limit.
const DefaultMaxJSONSize = 64 << 20

// JSONOption configures the JSON binder.
type JSONOption func(*jsonOptions)

type jsonOptions struct {
	maxSize int64
}

// WithMaxSize sets the maximum accepted body size in bytes.
func WithMaxSize(n int64) JSONOption {
	return func(o *jsonOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// JSON creates a JSON body binder.
//
// An empty body leaves v untouched so that field validation reports what is
// missing. A Content-Type other than application/json is rejected; a missing
// one is accepted. Unknown fields are ignored.
func JSON(opts ...JSONOption) Func {
	o := jsonOptions{maxSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&o)
	}

	return func(r *http.Request, v any) error {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, ct)
			}
		}
		if r.Body == nil || r.Body == http.NoBody {
			return nil
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, o.maxSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > o.maxSize {
			return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, o.maxSize)
		}
		if len(body) == 0 {
			return nil
		}

		if err := json.Unmarshal(body, v); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				return fmt.Errorf("%w: invalid JSON at offset %d", ErrFailedToParseJSON, syntaxErr.Offset)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}
		return nil
	}
}
