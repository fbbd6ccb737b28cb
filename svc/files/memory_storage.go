package files

import (
	"context"
	"sync"
)

// MemoryStorage is an in-process Storage for tests and local runs. Records
// are listed in insertion order.
type MemoryStorage struct {
	mu    sync.RWMutex
	order []string
	files map[string]File
}

// NewMemoryStorage creates an empty storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string]File)}
}

func (s *MemoryStorage) CreateFile(_ context.Context, f *File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *f
	rec.ParentID = rec.ParentID.Normalize()
	if _, ok := s.files[rec.ID]; !ok {
		s.order = append(s.order, rec.ID)
	}
	s.files[rec.ID] = rec
	return nil
}

func (s *MemoryStorage) GetFile(_ context.Context, id string) (*File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (s *MemoryStorage) GetUserFile(ctx context.Context, userID, id string) (*File, error) {
	f, err := s.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.UserID != userID {
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *MemoryStorage) ListFiles(_ context.Context, userID string, parentID ParentID, offset, limit int) ([]File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parentID = parentID.Normalize()
	list := []File{}
	skipped := 0
	for _, id := range s.order {
		f := s.files[id]
		if f.UserID != userID || f.ParentID != parentID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(list) == limit {
			break
		}
		list = append(list, f)
	}
	return list, nil
}

func (s *MemoryStorage) SetPublic(_ context.Context, userID, id string, public bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok || f.UserID != userID {
		return ErrNotFound
	}
	f.IsPublic = public
	s.files[id] = f
	return nil
}

// CountFiles returns the number of stored records.
func (s *MemoryStorage) CountFiles(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.files)), nil
}
