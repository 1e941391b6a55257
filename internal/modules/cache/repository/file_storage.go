package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/reshetovitsme/bump-notifier/internal/modules/cache/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/samber/oops"
)

// FileStorage implements Repository with a single JSON file
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

// NewFileStorage creates a new file-based cache repository. The parent
// directory is created; the file itself is not.
func NewFileStorage(path string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, oops.With("cache_path", path, "context", "failed to create cache directory").Wrap(err)
	}

	return &FileStorage{path: path}, nil
}

func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Load() (*domain.Cache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oops.
				In("cache").
				Code("cache_not_found").
				With("cache_path", s.path).
				Wrap(fmt.Errorf("%w: %w", errors.ErrCacheRead, errors.ErrCacheNotFound))
		}
		return nil, oops.
			In("cache").
			Code("cache_read_failure").
			With("cache_path", s.path).
			Wrap(fmt.Errorf("%w: %w", errors.ErrCacheRead, err))
	}

	var cache *domain.Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, oops.
			In("cache").
			Code("cache_read_failure").
			With("cache_path", s.path, "context", "failed to unmarshal cache").
			Wrap(fmt.Errorf("%w: %w", errors.ErrCacheRead, err))
	}
	if cache == nil {
		return nil, oops.
			In("cache").
			Code("cache_read_failure").
			With("cache_path", s.path, "context", "cache file holds null").
			Wrap(errors.ErrCacheRead)
	}

	return cache, nil
}

// Save replaces the cache file atomically: the new content is written to a
// temporary file in the same directory, synced and renamed over the old one.
func (s *FileStorage) Save(cache *domain.Cache) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return s.writeFailure(err, "failed to marshal cache")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return s.writeFailure(err, "failed to create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return s.writeFailure(err, "failed to write temp file")
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return s.writeFailure(err, "failed to sync temp file")
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return s.writeFailure(err, "failed to close temp file")
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return s.writeFailure(err, "failed to chmod temp file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return s.writeFailure(err, "failed to replace cache file")
	}

	return nil
}

func (s *FileStorage) writeFailure(err error, context string) error {
	return oops.
		In("cache").
		Code("cache_write_failure").
		With("cache_path", s.path, "context", context).
		Wrap(fmt.Errorf("%w: %w", errors.ErrCacheWrite, err))
}
