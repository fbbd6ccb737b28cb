package file

import (
	"context"
	"io"
)

// Storage persists opaque blobs addressed by locators.
//
// A locator is what metadata records keep as the file's local path. Path
// turns a bare name into a locator, and derived blobs such as thumbnails
// append a suffix to an existing locator.
type Storage interface {
	// Path returns the locator for a new blob called name.
	Path(name string) string
	// Put writes r to locator, replacing any existing blob.
	Put(ctx context.Context, locator string, r io.Reader) error
	// Open returns the blob content. Missing blobs return ErrFileNotFound.
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
	// Exists reports whether a blob is stored at locator.
	Exists(ctx context.Context, locator string) bool
	// Delete removes the blob. Missing blobs return ErrFileNotFound.
	Delete(ctx context.Context, locator string) error
}
