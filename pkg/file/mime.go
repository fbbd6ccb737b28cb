package file

import (
	"mime"
	"path/filepath"
	"strings"
)

// DefaultMIMEType is returned for names without a known extension.
const DefaultMIMEType = "application/octet-stream"

// MIMEType infers the content type from the extension of name.
func MIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return DefaultMIMEType
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return DefaultMIMEType
}
