package storage_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobiliaria/internal/storage"
	filestorage "inmobiliaria/internal/storage/filestorage"
)

func setupFileStorage(t *testing.T, maxSize int64) *filestorage.LocalFileStorage {
	t.Helper()

	fs, err := filestorage.NewLocalFileStorage(t.TempDir(), "http://test.local/uploads", maxSize)
	require.NoError(t, err)

	return fs
}

func createUpload(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestLocalFileStorage_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("successful save", func(t *testing.T) {
		fs := setupFileStorage(t, 1024)

		path, size, err := fs.Save(ctx, createUpload(t, "Export Propiedades.CSV", "slug,title\n"), "imports")
		require.NoError(t, err)
		assert.Equal(t, int64(11), size)
		assert.Equal(t, "imports", filepath.Dir(path))
		assert.True(t, strings.HasSuffix(path, "-export-propiedades.csv"))

		f, err := fs.Open(path)
		require.NoError(t, err)
		defer f.Close()

		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "slug,title\n", string(data))
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		fs := setupFileStorage(t, 1024)

		_, _, err := fs.Save(ctx, createUpload(t, "casa.jpg", "x"), "imports")
		assert.ErrorIs(t, err, storage.ErrInvalidFileType)
	})

	t.Run("rejects large files", func(t *testing.T) {
		fs := setupFileStorage(t, 4)

		_, _, err := fs.Save(ctx, createUpload(t, "big.json", "[1,2,3]"), "imports")
		assert.ErrorIs(t, err, storage.ErrFileTooLarge)
	})

	t.Run("cancelled context", func(t *testing.T) {
		fs := setupFileStorage(t, 1024)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := fs.Save(cctx, createUpload(t, "a.csv", "x"), "imports")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalFileStorage_Delete(t *testing.T) {
	ctx := context.Background()
	fs := setupFileStorage(t, 1024)

	path, _, err := fs.Save(ctx, createUpload(t, "a.json", "[]"), "imports")
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ctx, path))
	assert.ErrorIs(t, fs.Delete(ctx, path), storage.ErrFileNotFound)

	_, err = fs.Open(path)
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestLocalFileStorage_GetFullPathStaysInBaseDir(t *testing.T) {
	fs := setupFileStorage(t, 0)

	full := fs.GetFullPath("../../etc/passwd")
	assert.Equal(t, filepath.Join(filepath.Dir(fs.GetFullPath("x")), "etc", "passwd"), full)
}
