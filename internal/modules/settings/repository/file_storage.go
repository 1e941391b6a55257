package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/reshetovitsme/bump-notifier/internal/modules/settings/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// FileStorage implements Repository with one JSON file per guild
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based settings repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	settingsPath := filepath.Join(basePath, "settings")
	if err := os.MkdirAll(settingsPath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create settings directory").Wrap(err)
	}

	return &FileStorage{basePath: settingsPath}, nil
}

func (s *FileStorage) Get(_ context.Context, platform, guildID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, err := s.read(platform, guildID)
	if err != nil {
		return "", err
	}

	value, ok := settings.Values[key]
	if !ok {
		return "", errors.ErrSettingNotFound
	}

	return value, nil
}

func (s *FileStorage) Set(_ context.Context, setting domain.Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.read(setting.Platform, setting.GuildID)
	if err != nil && !stderrors.Is(err, errors.ErrSettingNotFound) {
		return err
	}
	if settings == nil {
		settings = &domain.GuildSettings{
			Platform: setting.Platform,
			GuildID:  setting.GuildID,
		}
	}
	if settings.Values == nil {
		settings.Values = map[string]string{}
	}

	settings.Values[setting.Key] = setting.Value
	settings.UpdatedAt = time.Now().UTC()

	return s.write(settings)
}

func (s *FileStorage) Delete(_ context.Context, platform, guildID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.read(platform, guildID)
	if err != nil {
		if stderrors.Is(err, errors.ErrSettingNotFound) {
			return nil
		}
		return err
	}

	if _, ok := settings.Values[key]; !ok {
		return nil
	}

	delete(settings.Values, key)
	settings.UpdatedAt = time.Now().UTC()

	if len(settings.Values) == 0 {
		path, err := s.guildPath(platform, guildID)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil {
			return oops.With("platform", platform, "guild_id", guildID, "context", "failed to remove empty settings").Wrap(err)
		}
		return nil
	}

	return s.write(settings)
}

func (s *FileStorage) Guilds(_ context.Context, platform, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.basePath, platform)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, oops.With("directory", dir, "context", "failed to read settings directory").Wrap(err)
	}

	guilds := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			return "", false
		}

		settings, err := s.read(platform, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return "", false
		}

		_, ok := settings.Values[key]
		return settings.GuildID, ok
	})
	slices.Sort(guilds)

	return guilds, nil
}

func (s *FileStorage) Close() error {
	return nil
}

func (s *FileStorage) read(platform, guildID string) (*domain.GuildSettings, error) {
	path, err := s.guildPath(platform, guildID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrSettingNotFound
		}
		return nil, oops.With("platform", platform, "guild_id", guildID, "context", "failed to read settings").Wrap(err)
	}

	var settings domain.GuildSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, oops.With("platform", platform, "guild_id", guildID, "context", "failed to unmarshal settings").Wrap(err)
	}

	return &settings, nil
}

func (s *FileStorage) write(settings *domain.GuildSettings) error {
	path, err := s.guildPath(settings.Platform, settings.GuildID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return oops.With("platform", settings.Platform, "context", "failed to create platform directory").Wrap(err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return oops.With("platform", settings.Platform, "guild_id", settings.GuildID, "context", "failed to marshal settings").Wrap(err)
	}

	return os.WriteFile(path, data, 0644)
}

func (s *FileStorage) guildPath(platform, guildID string) (string, error) {
	if !validPathElement(platform) || !validPathElement(guildID) {
		return "", oops.With("platform", platform, "guild_id", guildID).Errorf("invalid settings scope")
	}

	return filepath.Join(s.basePath, platform, guildID+".json"), nil
}

func validPathElement(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
