package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps blobs on the local filesystem. Locators are absolute
// paths and every operation is confined to baseDir.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage resolves baseDir to an absolute path and creates it.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return &LocalStorage{baseDir: abs}, nil
}

// BaseDir returns the absolute storage directory.
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

func (s *LocalStorage) Path(name string) string {
	return filepath.Join(s.baseDir, filepath.Base(name))
}

// Put writes into a temporary file and renames it, so readers never see a
// partial blob.
func (s *LocalStorage) Put(ctx context.Context, locator string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolvePath(locator)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, contextReader{ctx: ctx, r: r}); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}

func (s *LocalStorage) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	path, err := s.resolvePath(locator)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, locator)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}

	if info, err := f.Stat(); err == nil && info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, locator)
	}
	return f, nil
}

func (s *LocalStorage) Exists(ctx context.Context, locator string) bool {
	path, err := s.resolvePath(locator)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *LocalStorage) Delete(ctx context.Context, locator string) error {
	path, err := s.resolvePath(locator)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, locator)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// resolvePath accepts absolute locators inside baseDir and names relative
// to it. Anything escaping baseDir is rejected.
func (s *LocalStorage) resolvePath(locator string) (string, error) {
	if locator == "" {
		return "", ErrInvalidPath
	}

	path := filepath.Clean(locator)
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.baseDir, path)
	}

	rel, err := filepath.Rel(s.baseDir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, locator)
	}
	return path, nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
