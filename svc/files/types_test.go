package files_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filemanager/svc/files"
)

func TestParentID_JSON(t *testing.T) {
	t.Parallel()

	t.Run("decode", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			input string
			want  files.ParentID
		}{
			{`{}`, files.ParentID("")},
			{`{"parentId":0}`, files.Root},
			{`{"parentId":"0"}`, files.Root},
			{`{"parentId":""}`, files.Root},
			{`{"parentId":null}`, files.Root},
			{`{"parentId":"5f1e7d0c9b1e8a3d4c2b1a00"}`, files.ParentID("5f1e7d0c9b1e8a3d4c2b1a00")},
			{`{"parentId":12}`, files.ParentID("12")},
		}
		for _, tt := range tests {
			var in files.CreateInput
			require.NoError(t, json.Unmarshal([]byte(tt.input), &in), tt.input)
			assert.Equal(t, tt.want, in.ParentID, tt.input)
			assert.Equal(t, tt.want.IsRoot(), in.ParentID.Normalize() == files.Root, tt.input)
		}
	})

	t.Run("decode rejects objects", func(t *testing.T) {
		t.Parallel()
		var in files.CreateInput
		assert.Error(t, json.Unmarshal([]byte(`{"parentId":{}}`), &in))
	})

	t.Run("encode", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(files.View{ID: "a", ParentID: files.Root})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"a","userId":"","name":"","type":"","isPublic":false,"parentId":0}`, string(data))

		data, err = json.Marshal(files.View{ID: "a", ParentID: "f1"})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"parentId":"f1"`)
	})
}

func TestCreateInput_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantType   files.Kind
		wantPublic bool
	}{
		{"string type", `{"name":"a","type":"image","isPublic":true}`, files.KindImage, true},
		{"numeric type", `{"name":"a","type":1}`, "", false},
		{"object type", `{"name":"a","type":{"x":1}}`, "", false},
		{"string public", `{"name":"a","type":"file","isPublic":"yes"}`, files.KindFile, true},
		{"empty string public", `{"name":"a","type":"file","isPublic":""}`, files.KindFile, false},
		{"numeric public", `{"name":"a","type":"file","isPublic":0}`, files.KindFile, false},
		{"null public", `{"name":"a","type":"file","isPublic":null}`, files.KindFile, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var in files.CreateInput
			require.NoError(t, json.Unmarshal([]byte(tt.input), &in))
			assert.Equal(t, "a", in.Name)
			assert.Equal(t, tt.wantType, in.Type)
			assert.Equal(t, tt.wantPublic, in.IsPublic)
			assert.Equal(t, tt.wantType.Valid(), in.Type.Valid())
		})
	}

	t.Run("parent and data", func(t *testing.T) {
		t.Parallel()
		var in files.CreateInput
		require.NoError(t, json.Unmarshal([]byte(`{"type":"file","parentId":0,"data":"eA=="}`), &in))
		assert.Equal(t, files.Root, in.ParentID)
		assert.Equal(t, "eA==", in.Data)
	})
}

func TestKind_Valid(t *testing.T) {
	t.Parallel()

	for _, k := range []files.Kind{files.KindFolder, files.KindFile, files.KindImage} {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, files.Kind("").Valid())
	assert.False(t, files.Kind("video").Valid())
}

func TestVariantLocator(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/tmp/files/abc_250", files.VariantLocator("/tmp/files/abc", 250))
}
