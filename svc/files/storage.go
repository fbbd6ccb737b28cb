package files

import "context"

// Storage persists records. Missing records, and ids that cannot exist,
// return ErrNotFound.
type Storage interface {
	CreateFile(ctx context.Context, f *File) error
	GetFile(ctx context.Context, id string) (*File, error)
	GetUserFile(ctx context.Context, userID, id string) (*File, error)
	ListFiles(ctx context.Context, userID string, parentID ParentID, offset, limit int) ([]File, error)
	SetPublic(ctx context.Context, userID, id string, public bool) error
}
