package binder_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filedrop/binder"
)

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestGetFile(t *testing.T) {
	t.Parallel()

	t.Run("returns uploaded file", func(t *testing.T) {
		t.Parallel()

		req := multipartRequest(t, "file", "photo.png", []byte("fake png bytes"))
		upload, err := binder.GetFile(req, "file")
		require.NoError(t, err)
		require.NotNil(t, upload)

		assert.Equal(t, "photo.png", upload.Filename)
		assert.Equal(t, int64(len("fake png bytes")), upload.Size)
		assert.Equal(t, []byte("fake png bytes"), upload.Content)
	})

	t.Run("missing field yields nil without error", func(t *testing.T) {
		t.Parallel()

		req := multipartRequest(t, "other", "photo.png", []byte("x"))
		upload, err := binder.GetFile(req, "file")
		require.NoError(t, err)
		assert.Nil(t, upload)
	})

	t.Run("non-multipart body fails", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader([]byte("raw")))
		req.Header.Set("Content-Type", "application/json")

		_, err := binder.GetFile(req, "file")
		assert.ErrorIs(t, err, binder.ErrInvalidForm)
	})

	t.Run("capped body keeps MaxBytesError in the chain", func(t *testing.T) {
		t.Parallel()

		req := multipartRequest(t, "file", "big.zip", bytes.Repeat([]byte("x"), 4096))
		rec := httptest.NewRecorder()
		req.Body = http.MaxBytesReader(rec, req.Body, 128)

		_, err := binder.GetFile(req, "file")
		require.ErrorIs(t, err, binder.ErrInvalidForm)

		var maxBytesErr *http.MaxBytesError
		assert.ErrorAs(t, err, &maxBytesErr, "callers must be able to tell a capped body apart")
	})
}

func TestFileUpload_DeclaredContentType(t *testing.T) {
	t.Parallel()

	req := multipartRequest(t, "file", "archive.zip", []byte("PK\x03\x04"))
	upload, err := binder.GetFile(req, "file")
	require.NoError(t, err)

	// multipart.Writer declares application/octet-stream for form files.
	assert.Equal(t, "application/octet-stream", upload.DeclaredContentType())
}

func TestStreamFile(t *testing.T) {
	t.Parallel()

	req := multipartRequest(t, "file", "big.zip", []byte("stream me"))

	var streamed []byte
	err := binder.StreamFile(req, "file", func(r io.Reader, header *binder.FileHeader) error {
		assert.Equal(t, "big.zip", header.Filename)
		var readErr error
		streamed, readErr = io.ReadAll(r)
		return readErr
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("stream me"), streamed)
}
