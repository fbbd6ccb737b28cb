package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/dmitrymomot/filemanager/pkg/file"
	"github.com/dmitrymomot/filemanager/pkg/logger"
	"github.com/dmitrymomot/filemanager/pkg/queue"
	"github.com/dmitrymomot/filemanager/svc/files"
)

// Records looks up the image a job refers to.
type Records interface {
	GetUserFile(ctx context.Context, userID, id string) (*files.File, error)
}

// Generator renders thumbnails next to the original blob.
type Generator struct {
	records Records
	blobs   file.Storage
	widths  []int
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithWidths overrides files.ThumbnailWidths.
func WithWidths(widths ...int) Option {
	return func(g *Generator) {
		if len(widths) > 0 {
			g.widths = widths
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a thumbnail generator.
func NewGenerator(records Records, blobs file.Storage, opts ...Option) *Generator {
	g := &Generator{
		records: records,
		blobs:   blobs,
		widths:  files.ThumbnailWidths,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Handler returns the queue handler for files.ThumbnailJob.
func (g *Generator) Handler() queue.Handler {
	return queue.NewTaskHandler(g.Generate)
}

// Generate writes one variant per width at files.VariantLocator.
// Images that cannot be decoded or encoded are logged and skipped; lookup
// and storage failures are returned so the queue retries the job.
func (g *Generator) Generate(ctx context.Context, job files.ThumbnailJob) error {
	if job.FileID == "" {
		return ErrMissingFileID
	}
	if job.UserID == "" {
		return ErrMissingUserID
	}

	f, err := g.records.GetUserFile(ctx, job.UserID, job.FileID)
	if errors.Is(err, files.ErrNotFound) {
		return ErrFileNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	src, err := g.blobs.Open(ctx, f.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	img, format, err := image.Decode(src)
	_ = src.Close()
	if err != nil {
		g.logger.WarnContext(ctx, "cannot decode image",
			logger.FileID(f.ID),
			logger.Error(err),
			logger.Component("thumbnail"),
		)
		return nil
	}

	for _, width := range g.widths {
		var buf bytes.Buffer
		if err := Encode(&buf, Resize(img, width), format); err != nil {
			g.logger.WarnContext(ctx, "cannot encode thumbnail",
				logger.FileID(f.ID),
				slog.Int("width", width),
				logger.Error(err),
				logger.Component("thumbnail"),
			)
			continue
		}
		if err := g.blobs.Put(ctx, files.VariantLocator(f.LocalPath, width), &buf); err != nil {
			return fmt.Errorf("failed to store %d thumbnail: %w", width, err)
		}
	}

	g.logger.InfoContext(ctx, "thumbnails generated",
		logger.FileID(f.ID),
		logger.UserID(f.UserID),
		logger.Component("thumbnail"),
	)
	return nil
}
