package blob

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFSStore(t *testing.T) (*FSStore, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewFSStore(dir, slog.Default())
	require.NoError(t, err)

	return store, dir
}

func TestNewFSStore_MissingRoot(t *testing.T) {
	_, err := NewFSStore(filepath.Join(t.TempDir(), "absent"), nil)
	assert.Error(t, err)
}

func TestNewFSStore_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewFSStore(file, nil)
	assert.ErrorContains(t, err, "not a directory")
}

func TestFSStore_Download(t *testing.T) {
	store, dir := newTestFSStore(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "uploads"), 0o755))
	content := []byte("quarterly figures")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uploads", "report.txt"), content, 0o644))

	body, err := store.Download(context.Background(), "uploads/report.txt")
	require.NoError(t, err)
	assert.Equal(t, content, body)
}

func TestFSStore_DownloadRejectsEscapingPaths(t *testing.T) {
	store, _ := newTestFSStore(t)

	cases := []string{
		"../escape.txt",
		"uploads/../../escape.txt",
		"/etc/passwd",
	}
	for _, path := range cases {
		_, err := store.Download(context.Background(), path)
		assert.ErrorIs(t, err, ErrInvalidPath, "path %q should be rejected", path)
	}
}

func TestFSStore_DownloadMissingFile(t *testing.T) {
	store, _ := newTestFSStore(t)

	_, err := store.Download(context.Background(), "uploads/nope.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSStore_DownloadEmptyPath(t *testing.T) {
	store, _ := newTestFSStore(t)

	_, err := store.Download(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestFSStore_DownloadCanceledContext(t *testing.T) {
	store, dir := newTestFSStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Download(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}
