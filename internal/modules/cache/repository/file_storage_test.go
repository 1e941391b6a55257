package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reshetovitsme/bump-notifier/internal/modules/cache/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageLoadPlainObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bumped.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ "isoDate" : "2017-10-02T14:31:05.000Z" }`), 0644))

	s, err := NewFileStorage(path)
	require.NoError(t, err)

	cache, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "2017-10-02T14:31:05.000Z", cache.ISODate)
}

func TestFileStorageLoadMissingFile(t *testing.T) {
	s, err := NewFileStorage(filepath.Join(t.TempDir(), "nested", "bumped.json"))
	require.NoError(t, err)

	_, err = s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCacheNotFound)
	assert.ErrorIs(t, err, errors.ErrCacheRead)
}

func TestFileStorageLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bumped.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ "isoDate" : `), 0644))

	s, err := NewFileStorage(path)
	require.NoError(t, err)

	_, err = s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCacheRead)
	assert.NotErrorIs(t, err, errors.ErrCacheNotFound)
}

func TestFileStorageLoadNullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bumped.json")
	require.NoError(t, os.WriteFile(path, []byte("null\n"), 0644))

	s, err := NewFileStorage(path)
	require.NoError(t, err)

	cache, err := s.Load()
	require.Error(t, err)
	assert.Nil(t, cache)
	assert.ErrorIs(t, err, errors.ErrCacheRead)
	assert.NotErrorIs(t, err, errors.ErrCacheNotFound)
}

func TestFileStorageSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bumped.json")

	s, err := NewFileStorage(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(&domain.Cache{ISODate: "2024-01-01T00:00:00.000Z"}))
	require.NoError(t, s.Save(&domain.Cache{ISODate: "2024-02-01T00:00:00.000Z"}))

	cache, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01T00:00:00.000Z", cache.ISODate)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "bumped.json", entries[0].Name())
}

func TestFileStorageSaveIntoMissingDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(filepath.Join(dir, "sub", "bumped.json"))
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "sub")))

	err = s.Save(&domain.Cache{ISODate: "2024-01-01T00:00:00.000Z"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCacheWrite)
}
