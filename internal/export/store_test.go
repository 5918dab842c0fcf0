package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	store := NewFileStore(dir)

	location, err := store.Put(context.Background(), "Jane_Doe_CV.pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Jane_Doe_CV.pdf"), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not remain")
}

func TestFileStore_Overwrite(t *testing.T) {
	store := NewFileStore(t.TempDir())
	_, err := store.Put(context.Background(), "cv.pdf", []byte("one"))
	require.NoError(t, err)
	location, err := store.Put(context.Background(), "cv.pdf", []byte("two"))
	require.NoError(t, err)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	for _, name := range []string{"", "../escape.pdf", "sub/cv.pdf"} {
		_, err := store.Put(context.Background(), name, []byte("x"))
		assert.Error(t, err, name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	// a directory squatting on the final name makes the rename fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cv.pdf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cv.pdf", "keep"), []byte("x"), 0o644))

	_, err := NewFileStore(dir).Put(context.Background(), "cv.pdf", []byte("data"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cv.pdf", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestFileStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileStore(t.TempDir()).Put(ctx, "cv.pdf", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
