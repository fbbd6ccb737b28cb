package files

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Kind is the type of a record.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
	KindImage  Kind = "image"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFolder, KindFile, KindImage:
		return true
	}
	return false
}

// ParentID references the containing folder. Root is encoded as 0 in JSON.
type ParentID string

// Root is the parent of top level records.
const Root ParentID = "0"

// IsRoot reports whether p points at the root folder.
func (p ParentID) IsRoot() bool {
	return p == "" || p == Root
}

// Normalize maps every root spelling to Root.
func (p ParentID) Normalize() ParentID {
	if p.IsRoot() {
		return Root
	}
	return p
}

func (p ParentID) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON accepts null, numbers and strings. 0, "0" and "" mean root.
func (p *ParentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = Root
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParentID(s).Normalize()
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("parentId must be a string or a number: %w", err)
		}
		if v, err := strconv.ParseFloat(n.String(), 64); err == nil && v == 0 {
			*p = Root
			return nil
		}
		*p = ParentID(n.String())
		return nil
	}
}

// File is a stored file or folder record.
type File struct {
	ID        string
	UserID    string
	Name      string
	Type      Kind
	IsPublic  bool
	ParentID  ParentID
	LocalPath string
}

// View is the client facing representation of a record. It never carries
// the storage locator.
type View struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Name     string   `json:"name"`
	Type     Kind     `json:"type"`
	IsPublic bool     `json:"isPublic"`
	ParentID ParentID `json:"parentId"`
}

// View converts the record for clients.
func (f *File) View() View {
	return View{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: f.ParentID.Normalize(),
	}
}

// CreateInput is the payload of a new record. Data is base64 and required
// for everything but folders.
type CreateInput struct {
	Name     string   `json:"name"`
	Type     Kind     `json:"type"`
	ParentID ParentID `json:"parentId"`
	IsPublic bool     `json:"isPublic"`
	Data     string   `json:"data"`
}

// UnmarshalJSON is lenient on type and isPublic: a non-string type decodes
// to an invalid Kind, and isPublic follows JSON truthiness.
func (in *CreateInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string          `json:"name"`
		Type     json.RawMessage `json:"type"`
		ParentID ParentID        `json:"parentId"`
		IsPublic json.RawMessage `json:"isPublic"`
		Data     string          `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var kind string
	if len(raw.Type) > 0 && json.Unmarshal(raw.Type, &kind) != nil {
		kind = ""
	}

	*in = CreateInput{
		Name:     raw.Name,
		Type:     Kind(kind),
		ParentID: raw.ParentID,
		IsPublic: truthy(raw.IsPublic),
		Data:     raw.Data,
	}
	return nil
}

func truthy(raw json.RawMessage) bool {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

// Content is an open blob ready to be streamed. Callers close Body.
type Content struct {
	Name     string
	MIMEType string
	Body     io.ReadCloser
}

// ThumbnailJob asks the worker to render the image variants of a record.
type ThumbnailJob struct {
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}

// TaskName routes the job to the thumbnail handler.
func (ThumbnailJob) TaskName() string {
	return "thumbnail"
}

// ThumbnailWidths are the widths rendered for images, and the only accepted
// values of the size parameter.
var ThumbnailWidths = []int{500, 250, 100}

// VariantLocator returns where the variant of the given width is stored.
func VariantLocator(locator string, width int) string {
	return locator + "_" + strconv.Itoa(width)
}
