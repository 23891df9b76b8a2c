package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savanth/folio/pkg/storage"
)

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	url, err := fs.Save("photo.png", strings.NewReader("image bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	// The stored name is generated, never the caller's filename.
	assert.NotContains(t, url, "photo")

	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))

	require.NoError(t, fs.Remove(url))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// Removing an already-gone file is not an error.
	require.NoError(t, fs.Remove(url))
}

func TestRemoveIgnoresTraversal(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	victim := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(victim, []byte("x"), 0o644))

	// Names escaping the upload directory are refused without error.
	require.NoError(t, fs.Remove("/uploads/../keep.txt"))
	require.NoError(t, fs.Remove("not-an-upload-url"))

	_, err = os.Stat(victim)
	require.NoError(t, err)
}
