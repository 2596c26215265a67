package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filedrop/storage"
)

func newLocal(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()

	dir := t.TempDir()
	s, err := storage.NewLocalStorage(dir, "https://files.example.com")
	require.NoError(t, err)
	return s, dir
}

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("creates missing directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "store")
		_, err := storage.NewLocalStorage(dir, "")
		require.NoError(t, err)
		assert.DirExists(t, dir)
	})

	t.Run("empty base dir", func(t *testing.T) {
		t.Parallel()

		_, err := storage.NewLocalStorage("", "")
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})
}

func TestLocalStorage_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes object", func(t *testing.T) {
		t.Parallel()

		s, dir := newLocal(t)
		n, err := s.Create(ctx, "aabbccddeeff00112233.zip", strings.NewReader("content"))
		require.NoError(t, err)
		assert.Equal(t, int64(len("content")), n)

		data, err := os.ReadFile(filepath.Join(dir, "aabbccddeeff00112233.zip"))
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		s, _ := newLocal(t)
		_, err := s.Create(ctx, "deadbeefdeadbeef0000.png", strings.NewReader("first"))
		require.NoError(t, err)

		_, err = s.Create(ctx, "deadbeefdeadbeef0000.png", strings.NewReader("second"))
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("rejects traversal and nested names", func(t *testing.T) {
		t.Parallel()

		s, _ := newLocal(t)
		for _, name := range []string{"", ".", "..", "../escape.png", "sub/dir.png", `sub\dir.png`} {
			_, err := s.Create(ctx, name, strings.NewReader("x"))
			assert.ErrorIs(t, err, storage.ErrInvalidName, "name %q", name)
		}
	})

	t.Run("unwritable directory leaves nothing behind", func(t *testing.T) {
		t.Parallel()

		s, dir := newLocal(t)
		require.NoError(t, os.Chmod(dir, 0555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

		_, err := s.Create(ctx, "0123456789abcdef0123.zip", strings.NewReader("x"))
		require.ErrorIs(t, err, storage.ErrFailedToWrite)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("cancelled context removes partial file", func(t *testing.T) {
		t.Parallel()

		s, dir := newLocal(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := s.Create(cancelled, "ffffffffffffffff0000.zip", strings.NewReader("x"))
		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, filepath.Join(dir, "ffffffffffffffff0000.zip"))
	})
}

func TestLocalStorage_ExistsWithPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, dir := newLocal(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "aaaa000011112222333.png"), []byte("x"), 0644))

	assert.True(t, s.ExistsWithPrefix(ctx, "aaaa000011112222333."))
	assert.True(t, s.ExistsWithPrefix(ctx, "aaaa"))
	assert.False(t, s.ExistsWithPrefix(ctx, "bbbb000011112222333."))

	// The probe spans every extension at once.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cccc000011112222333.zip"), []byte("x"), 0644))
	assert.True(t, s.ExistsWithPrefix(ctx, "cccc000011112222333."))
}

func TestLocalStorage_Remove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, dir := newLocal(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "feedfacefeedface0000.png"), []byte("x"), 0644))

	require.NoError(t, s.Remove(ctx, "feedfacefeedface0000.png"))
	assert.NoFileExists(t, filepath.Join(dir, "feedfacefeedface0000.png"))

	assert.ErrorIs(t, s.Remove(ctx, "feedfacefeedface0000.png"), storage.ErrNotFound)
}

func TestLocalStorage_URL(t *testing.T) {
	t.Parallel()

	s, _ := newLocal(t)
	assert.Equal(t, "https://files.example.com/abc.png", s.URL("abc.png"))
}

func TestLocalStorage_Healthcheck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writable", func(t *testing.T) {
		t.Parallel()

		s, dir := newLocal(t)
		require.NoError(t, s.Healthcheck(ctx))

		// Probe file must not linger.
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("read-only", func(t *testing.T) {
		t.Parallel()

		s, dir := newLocal(t)
		require.NoError(t, os.Chmod(dir, 0555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

		assert.ErrorIs(t, s.Healthcheck(ctx), storage.ErrDirectoryUnwritable)
	})
}
