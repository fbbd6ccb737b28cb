package file_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filemanager/pkg/file"
)

func TestLocalStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("put open delete", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		s, err := file.NewLocalStorage(dir)
		require.NoError(t, err)

		loc := s.Path("blob")
		assert.Equal(t, filepath.Join(dir, "blob"), loc)

		require.NoError(t, s.Put(ctx, loc, strings.NewReader("Hello Webstack!")))
		assert.True(t, s.Exists(ctx, loc))

		rc, err := s.Open(ctx, loc)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		assert.Equal(t, "Hello Webstack!", string(data))

		require.NoError(t, s.Delete(ctx, loc))
		assert.False(t, s.Exists(ctx, loc))
		assert.ErrorIs(t, s.Delete(ctx, loc), file.ErrFileNotFound)
	})

	t.Run("suffixed locator", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		loc := s.Path("img")
		require.NoError(t, s.Put(ctx, loc+"_100", strings.NewReader("thumb")))
		assert.True(t, s.Exists(ctx, loc+"_100"))
		assert.False(t, s.Exists(ctx, loc))
	})

	t.Run("missing blob", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		_, err = s.Open(ctx, s.Path("nope"))
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("creates base dir", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "a", "b")
		s, err := file.NewLocalStorage(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.BaseDir())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects escaping locators", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		assert.ErrorIs(t, s.Put(ctx, "/etc/passwd", strings.NewReader("x")), file.ErrInvalidPath)
		assert.ErrorIs(t, s.Put(ctx, "../escape", strings.NewReader("x")), file.ErrInvalidPath)
		assert.ErrorIs(t, s.Put(ctx, "", strings.NewReader("x")), file.ErrInvalidPath)
		_, err = s.Open(ctx, s.BaseDir())
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		assert.Equal(t, filepath.Join(s.BaseDir(), "passwd"), s.Path("../../etc/passwd"))
	})

	t.Run("filesystem root as base dir", func(t *testing.T) {
		t.Parallel()
		root := string(filepath.Separator)
		s, err := file.NewLocalStorage(root)
		require.NoError(t, err)

		_, err = s.Open(ctx, s.Path("filemanager-missing-blob-7f3a"))
		assert.ErrorIs(t, err, file.ErrFileNotFound)
		assert.NotErrorIs(t, err, file.ErrInvalidPath)

		_, err = s.Open(ctx, root)
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("sibling directory with shared prefix", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		s, err := file.NewLocalStorage(filepath.Join(dir, "blobs"))
		require.NoError(t, err)

		assert.ErrorIs(t, s.Put(ctx, filepath.Join(dir, "blobs2", "x"), strings.NewReader("x")), file.ErrInvalidPath)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, s.Put(cctx, s.Path("x"), strings.NewReader("x")), context.Canceled)
		assert.False(t, s.Exists(ctx, s.Path("x")))
	})

	t.Run("empty base dir", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewLocalStorage("")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

func TestMIMEType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"image.png":  "image/png",
		"photo.JPG":  "image/jpeg",
		"report.pdf": "application/pdf",
		"no_ext":     file.DefaultMIMEType,
		"weird.zzzq": file.DefaultMIMEType,
	}
	for name, want := range tests {
		assert.Equal(t, want, file.MIMEType(name), name)
	}
	assert.True(t, strings.HasPrefix(file.MIMEType("notes.txt"), "text/plain"))
}

func TestNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := file.New(ctx, file.Config{Driver: file.DriverLocal, FolderPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &file.LocalStorage{}, s)

	s, err = file.New(ctx, file.Config{Driver: file.DriverS3, S3Bucket: "b", S3Region: "us-east-1"}, file.WithS3Client(new(MockS3Client)))
	require.NoError(t, err)
	assert.IsType(t, &file.S3Storage{}, s)

	_, err = file.New(ctx, file.Config{Driver: "ftp"})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)

	_, err = file.New(ctx, file.Config{Driver: file.DriverS3})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}
