package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/reshetovitsme/bump-notifier/internal/modules/history/domain"
	"github.com/samber/oops"
)

// FileStorage implements Repository with a single JSON file holding the
// newest announcements first
type FileStorage struct {
	path  string
	limit int
	mu    sync.RWMutex
}

// NewFileStorage creates a new file-based history repository keeping at most limit announcements
func NewFileStorage(basePath string, limit int) (*FileStorage, error) {
	historyPath := filepath.Join(basePath, "history")
	if err := os.MkdirAll(historyPath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create history directory").Wrap(err)
	}

	if limit <= 0 {
		limit = 1
	}

	return &FileStorage{
		path:  filepath.Join(historyPath, "announcements.json"),
		limit: limit,
	}, nil
}

func (s *FileStorage) SaveAnnouncement(announcement *domain.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	announcements, err := s.read()
	if err != nil {
		return err
	}

	announcements = append([]*domain.Announcement{announcement}, announcements...)
	if len(announcements) > s.limit {
		announcements = announcements[:s.limit]
	}

	data, err := json.MarshalIndent(announcements, "", "  ")
	if err != nil {
		return oops.With("iso_date", announcement.Entry.ISODate, "context", "failed to marshal history").Wrap(err)
	}

	return os.WriteFile(s.path, data, 0644)
}

func (s *FileStorage) GetAnnouncements(limit int) ([]*domain.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	announcements, err := s.read()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(announcements) > limit {
		announcements = announcements[:limit]
	}

	return announcements, nil
}

func (s *FileStorage) read() ([]*domain.Announcement, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Announcement{}, nil
		}
		return nil, oops.With("history_path", s.path, "context", "failed to read history").Wrap(err)
	}

	var announcements []*domain.Announcement
	if err := json.Unmarshal(data, &announcements); err != nil {
		return nil, oops.With("history_path", s.path, "context", "failed to unmarshal history").Wrap(err)
	}

	return announcements, nil
}
