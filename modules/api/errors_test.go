package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/filemanager/modules/api"
	"github.com/dmitrymomot/filemanager/svc/auth"
	"github.com/dmitrymomot/filemanager/svc/files"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err     error
		code    int
		message string
	}{
		{fmt.Errorf("%w: %w", auth.ErrUnauthorized, auth.ErrMalformedCredentials), http.StatusUnauthorized, "Unauthorized"},
		{files.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{files.ErrNotFound, http.StatusNotFound, "Not found"},
		{fmt.Errorf("%w: illegal base64", files.ErrMissingData), http.StatusBadRequest, "Missing data"},
		{files.ErrFolderHasNoContent, http.StatusBadRequest, "A folder doesn't have content"},
		{auth.ErrAlreadyExists, http.StatusBadRequest, "Already exist"},
	}
	for _, tt := range tests {
		got, ok := api.MapError(tt.err)
		assert.True(t, ok, tt.err.Error())
		assert.Equal(t, tt.code, got.Code)
		assert.Equal(t, tt.message, got.Message)
	}

	_, ok := api.MapError(errors.New("boom"))
	assert.False(t, ok)
}
