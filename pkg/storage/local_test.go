package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("notes.md", []byte("# hello"))
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	data, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("# hello"), data)

	require.NoError(t, store.Delete(path))
	_, err = store.Load(path)
	assert.Error(t, err)

	// deleting twice is not an error
	assert.NoError(t, store.Delete(path))
}

func TestSaveSanitizesName(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.NotContains(t, path, "..")

	data, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

func TestSaveDistinctPathsForSameName(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	p1, err := store.Save("a.txt", []byte("one"))
	require.NoError(t, err)
	p2, err := store.Save("a.txt", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
}
