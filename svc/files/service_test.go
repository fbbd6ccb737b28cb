package files_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filemanager/pkg/file"
	"github.com/dmitrymomot/filemanager/pkg/queue"
	"github.com/dmitrymomot/filemanager/svc/files"
)

const (
	owner    = "5f1e7d0c9b1e8a3d4c2b1a01"
	stranger = "5f1e7d0c9b1e8a3d4c2b1a02"
)

type fixture struct {
	svc     *files.Service
	records *files.MemoryStorage
	blobs   *file.LocalStorage
	tasks   *queue.MemoryStorage
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	blobs, err := file.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	tasks := queue.NewMemoryStorage()
	enqueuer, err := queue.NewEnqueuer(tasks)
	require.NoError(t, err)

	records := files.NewMemoryStorage()
	return fixture{
		svc:     files.NewService(records, blobs, files.WithEnqueuer(enqueuer)),
		records: records,
		blobs:   blobs,
		tasks:   tasks,
	}
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func readAll(t *testing.T, c *files.Content) string {
	t.Helper()
	defer c.Body.Close()
	data, err := io.ReadAll(c.Body)
	require.NoError(t, err)
	return string(data)
}

type failingRecords struct{ files.Storage }

func (failingRecords) CreateFile(context.Context, *files.File) error {
	return errors.New("insert failed")
}

func TestService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		view, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "myText.txt", Type: files.KindFile, Data: b64("Hello Webstack!")})
		require.NoError(t, err)
		assert.NotEmpty(t, view.ID)
		assert.Equal(t, owner, view.UserID)
		assert.Equal(t, files.Root, view.ParentID)
		assert.False(t, view.IsPublic)

		rec, err := f.records.GetFile(ctx, view.ID)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(rec.LocalPath, f.blobs.BaseDir()))
		assert.True(t, f.blobs.Exists(ctx, rec.LocalPath))
		assert.Empty(t, f.tasks.Tasks())
	})

	t.Run("image enqueues thumbnail job", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		view, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "a.png", Type: files.KindImage, Data: b64("png"), IsPublic: true})
		require.NoError(t, err)
		assert.True(t, view.IsPublic)

		tasks := f.tasks.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, "thumbnail", tasks[0].TaskName)

		var job files.ThumbnailJob
		require.NoError(t, json.Unmarshal(tasks[0].Payload, &job))
		assert.Equal(t, files.ThumbnailJob{UserID: owner, FileID: view.ID}, job)
	})

	t.Run("folder and child", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		folder, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "images", Type: files.KindFolder})
		require.NoError(t, err)

		child, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "a.txt", Type: files.KindFile, Data: b64("x"), ParentID: files.ParentID(folder.ID)})
		require.NoError(t, err)
		assert.Equal(t, files.ParentID(folder.ID), child.ParentID)

		rec, err := f.records.GetFile(ctx, folder.ID)
		require.NoError(t, err)
		assert.Empty(t, rec.LocalPath)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		plain, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "a.txt", Type: files.KindFile, Data: b64("x")})
		require.NoError(t, err)

		tests := []struct {
			name string
			in   files.CreateInput
			want error
		}{
			{"missing name", files.CreateInput{Type: files.KindFile, Data: b64("x")}, files.ErrMissingName},
			{"missing type", files.CreateInput{Name: "a"}, files.ErrMissingType},
			{"unknown type", files.CreateInput{Name: "a", Type: "video"}, files.ErrMissingType},
			{"missing data", files.CreateInput{Name: "a", Type: files.KindFile}, files.ErrMissingData},
			{"invalid data", files.CreateInput{Name: "a", Type: files.KindFile, Data: "%%%"}, files.ErrMissingData},
			{"unknown parent", files.CreateInput{Name: "a", Type: files.KindFolder, ParentID: "5f1e7d0c9b1e8a3d4c2b1aff"}, files.ErrParentNotFound},
			{"parent not folder", files.CreateInput{Name: "a", Type: files.KindFile, Data: b64("x"), ParentID: files.ParentID(plain.ID)}, files.ErrParentNotFolder},
		}
		for _, tt := range tests {
			_, err := f.svc.Create(ctx, owner, tt.in)
			assert.ErrorIs(t, err, tt.want, tt.name)
		}

		count, err := f.records.CountFiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.svc.Create(ctx, "", files.CreateInput{Name: "a", Type: files.KindFolder})
		assert.ErrorIs(t, err, files.ErrUnauthorized)
	})

	t.Run("insert failure removes blob", func(t *testing.T) {
		t.Parallel()
		blobs, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)
		svc := files.NewService(failingRecords{}, blobs)

		_, err = svc.Create(ctx, owner, files.CreateInput{Name: "a.txt", Type: files.KindFile, Data: b64("x")})
		require.Error(t, err)

		entries, err := blobsIn(blobs.BaseDir())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestService_ShowAndPublish(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	view, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "a.txt", Type: files.KindFile, Data: b64("x")})
	require.NoError(t, err)

	got, err := f.svc.Show(ctx, owner, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view, got)

	_, err = f.svc.Show(ctx, stranger, view.ID)
	assert.ErrorIs(t, err, files.ErrNotFound)
	_, err = f.svc.Show(ctx, owner, "nope")
	assert.ErrorIs(t, err, files.ErrNotFound)
	_, err = f.svc.Show(ctx, "", view.ID)
	assert.ErrorIs(t, err, files.ErrUnauthorized)

	for range 2 {
		published, err := f.svc.Publish(ctx, owner, view.ID)
		require.NoError(t, err)
		assert.True(t, published.IsPublic)
	}

	unpublished, err := f.svc.Unpublish(ctx, owner, view.ID)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublic)

	_, err = f.svc.Publish(ctx, stranger, view.ID)
	assert.ErrorIs(t, err, files.ErrNotFound)
}

func TestService_Index(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	folder, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "dir", Type: files.KindFolder})
	require.NoError(t, err)
	for i := range 21 {
		_, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "f" + strconv.Itoa(i), Type: files.KindFile, Data: b64("x")})
		require.NoError(t, err)
	}
	_, err = f.svc.Create(ctx, owner, files.CreateInput{Name: "inner", Type: files.KindFile, Data: b64("x"), ParentID: files.ParentID(folder.ID)})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, stranger, files.CreateInput{Name: "theirs", Type: files.KindFolder})
	require.NoError(t, err)

	tests := []struct {
		page string
		want int
	}{
		{"0", 20},
		{"", 20},
		{"-3", 20},
		{"abc", 20},
		{"1", 2},
		{"13", 0},
		{"461168601842738791", 0},
		{"922337203685477581", 0},
	}
	for _, tt := range tests {
		list, err := f.svc.Index(ctx, owner, files.Root, tt.page)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Len(t, list, tt.want, "page %q", tt.page)
	}

	first, err := f.svc.Index(ctx, owner, "", "0")
	require.NoError(t, err)
	assert.Equal(t, folder.ID, first[0].ID)

	inner, err := f.svc.Index(ctx, owner, files.ParentID(folder.ID), "0")
	require.NoError(t, err)
	require.Len(t, inner, 1)
	assert.Equal(t, "inner", inner[0].Name)

	theirs, err := f.svc.Index(ctx, stranger, files.Root, "0")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	_, err = f.svc.Index(ctx, "", files.Root, "0")
	assert.ErrorIs(t, err, files.ErrUnauthorized)
}

func TestService_Content(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	private, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "note.txt", Type: files.KindFile, Data: b64("Hello Webstack!")})
	require.NoError(t, err)
	public, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "pic.png", Type: files.KindImage, Data: b64("png-bytes"), IsPublic: true})
	require.NoError(t, err)
	folder, err := f.svc.Create(ctx, owner, files.CreateInput{Name: "dir", Type: files.KindFolder, IsPublic: true})
	require.NoError(t, err)

	rec, err := f.records.GetFile(ctx, public.ID)
	require.NoError(t, err)
	require.NoError(t, f.blobs.Put(ctx, files.VariantLocator(rec.LocalPath, 250), strings.NewReader("thumb")))

	t.Run("owner reads private", func(t *testing.T) {
		c, err := f.svc.Content(ctx, owner, private.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "note.txt", c.Name)
		assert.Equal(t, "text/plain; charset=utf-8", c.MIMEType)
		assert.Equal(t, "Hello Webstack!", readAll(t, c))
	})

	t.Run("private hidden from others", func(t *testing.T) {
		for _, userID := range []string{"", stranger} {
			_, err := f.svc.Content(ctx, userID, private.ID, "")
			assert.ErrorIs(t, err, files.ErrNotFound)
		}
	})

	t.Run("public readable by anyone", func(t *testing.T) {
		c, err := f.svc.Content(ctx, "", public.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "image/png", c.MIMEType)
		assert.Equal(t, "png-bytes", readAll(t, c))
	})

	t.Run("variants", func(t *testing.T) {
		c, err := f.svc.Content(ctx, "", public.ID, "250")
		require.NoError(t, err)
		assert.Equal(t, "thumb", readAll(t, c))

		_, err = f.svc.Content(ctx, "", public.ID, "500")
		assert.ErrorIs(t, err, files.ErrNotFound)

		_, err = f.svc.Content(ctx, "", public.ID, "42")
		assert.ErrorIs(t, err, files.ErrNotFound)
	})

	t.Run("folder", func(t *testing.T) {
		_, err := f.svc.Content(ctx, owner, folder.ID, "")
		assert.ErrorIs(t, err, files.ErrFolderHasNoContent)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := f.svc.Content(ctx, owner, "nope", "")
		assert.ErrorIs(t, err, files.ErrNotFound)
	})
}

func blobsIn(dir string) ([]os.DirEntry, error) {
	return os.ReadDir(dir)
}
