package files

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/filemanager/pkg/file"
	"github.com/dmitrymomot/filemanager/pkg/logger"
	"github.com/dmitrymomot/filemanager/pkg/queue"
)

// DefaultPageSize is the number of records returned by Index.
const DefaultPageSize = 20

// Enqueuer schedules background jobs.
type Enqueuer interface {
	Enqueue(ctx context.Context, payload any, opts ...queue.EnqueueOption) error
}

// Service authorizes and performs file operations.
type Service struct {
	records  Storage
	blobs    file.Storage
	enqueuer Enqueuer
	pageSize int
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithEnqueuer enables thumbnail jobs for uploaded images.
func WithEnqueuer(e Enqueuer) ServiceOption {
	return func(s *Service) {
		s.enqueuer = e
	}
}

// WithPageSize overrides DefaultPageSize.
func WithPageSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates the file service.
func NewService(records Storage, blobs file.Storage, opts ...ServiceOption) *Service {
	s := &Service{
		records:  records,
		blobs:    blobs,
		pageSize: DefaultPageSize,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a folder, or a file with its decoded content, owned by userID.
// Content is written before the record so a record never points at a missing blob.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (View, error) {
	if userID == "" {
		return View{}, ErrUnauthorized
	}
	if in.Name == "" {
		return View{}, ErrMissingName
	}
	if !in.Type.Valid() {
		return View{}, ErrMissingType
	}

	parentID := in.ParentID.Normalize()
	if !parentID.IsRoot() {
		parent, err := s.records.GetFile(ctx, string(parentID))
		if errors.Is(err, ErrNotFound) {
			return View{}, ErrParentNotFound
		}
		if err != nil {
			return View{}, fmt.Errorf("failed to get parent: %w", err)
		}
		if parent.Type != KindFolder {
			return View{}, ErrParentNotFolder
		}
	}

	f := &File{
		ID:       bson.NewObjectID().Hex(),
		UserID:   userID,
		Name:     in.Name,
		Type:     in.Type,
		IsPublic: in.IsPublic,
		ParentID: parentID,
	}

	if f.Type != KindFolder {
		if in.Data == "" {
			return View{}, ErrMissingData
		}
		data, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return View{}, fmt.Errorf("%w: %v", ErrMissingData, err)
		}

		f.LocalPath = s.blobs.Path(uuid.NewString())
		if err := s.blobs.Put(ctx, f.LocalPath, bytes.NewReader(data)); err != nil {
			return View{}, fmt.Errorf("failed to store content: %w", err)
		}
	}

	if err := s.records.CreateFile(ctx, f); err != nil {
		if f.LocalPath != "" {
			if delErr := s.blobs.Delete(ctx, f.LocalPath); delErr != nil {
				s.logger.ErrorContext(ctx, "failed to remove orphan blob",
					logger.FileID(f.ID),
					logger.Error(delErr),
					logger.Component("files"),
				)
			}
		}
		return View{}, fmt.Errorf("failed to create file: %w", err)
	}

	if f.Type == KindImage && s.enqueuer != nil {
		if err := s.enqueuer.Enqueue(ctx, ThumbnailJob{UserID: userID, FileID: f.ID}); err != nil {
			s.logger.ErrorContext(ctx, "failed to enqueue thumbnail job",
				logger.UserID(userID),
				logger.FileID(f.ID),
				logger.Error(err),
				logger.Component("files"),
			)
		}
	}

	return f.View(), nil
}

// Show returns a record owned by userID.
func (s *Service) Show(ctx context.Context, userID, fileID string) (View, error) {
	if userID == "" {
		return View{}, ErrUnauthorized
	}
	f, err := s.records.GetUserFile(ctx, userID, fileID)
	if err != nil {
		return View{}, err
	}
	return f.View(), nil
}

// Index lists the records of userID inside parentID, one page at a time.
// Invalid or negative pages read as the first page.
func (s *Service) Index(ctx context.Context, userID string, parentID ParentID, page string) ([]View, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	n, err := strconv.Atoi(page)
	if err != nil || n < 0 {
		n = 0
	}
	if n > math.MaxInt/s.pageSize {
		return []View{}, nil
	}

	list, err := s.records.ListFiles(ctx, userID, parentID.Normalize(), n*s.pageSize, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	views := make([]View, 0, len(list))
	for i := range list {
		views = append(views, list[i].View())
	}
	return views, nil
}

// Publish makes a record readable by anyone.
func (s *Service) Publish(ctx context.Context, userID, fileID string) (View, error) {
	return s.setPublic(ctx, userID, fileID, true)
}

// Unpublish restricts a record to its owner.
func (s *Service) Unpublish(ctx context.Context, userID, fileID string) (View, error) {
	return s.setPublic(ctx, userID, fileID, false)
}

func (s *Service) setPublic(ctx context.Context, userID, fileID string, public bool) (View, error) {
	if userID == "" {
		return View{}, ErrUnauthorized
	}
	if err := s.records.SetPublic(ctx, userID, fileID, public); err != nil {
		return View{}, err
	}
	return s.Show(ctx, userID, fileID)
}

// Content opens the stored bytes of a record, or of one of its thumbnails
// when size is set. Private records are visible to their owner only;
// userID is empty for anonymous callers.
func (s *Service) Content(ctx context.Context, userID, fileID, size string) (*Content, error) {
	f, err := s.records.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !f.IsPublic && (userID == "" || userID != f.UserID) {
		return nil, ErrNotFound
	}
	if f.Type == KindFolder {
		return nil, ErrFolderHasNoContent
	}

	locator := f.LocalPath
	if size != "" {
		width, err := strconv.Atoi(size)
		if err != nil || !slices.Contains(ThumbnailWidths, width) {
			return nil, ErrNotFound
		}
		locator = VariantLocator(locator, width)
	}

	body, err := s.blobs.Open(ctx, locator)
	if errors.Is(err, file.ErrFileNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open content: %w", err)
	}

	return &Content{
		Name:     f.Name,
		MIMEType: file.MIMEType(f.Name),
		Body:     body,
	}, nil
}
