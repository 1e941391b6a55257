package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/reshetovitsme/bump-notifier/internal/modules/settings/domain"
	"github.com/reshetovitsme/bump-notifier/internal/modules/settings/repository"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/samber/oops"
)

// Service is the typed accessor for per-guild settings
type Service struct {
	repo       repository.Repository
	channelKey string
}

// New creates a new settings service
func New(cfg *config.Config, repo repository.Repository) *Service {
	return &Service{
		repo:       repo,
		channelKey: cfg.SettingsKey,
	}
}

// Get returns the value stored under key for the guild. ok is false when the
// key is not set or is blank.
func (s *Service) Get(ctx context.Context, platform, guildID, key string) (string, bool, error) {
	value, err := s.repo.Get(ctx, platform, guildID, key)
	if err != nil {
		if stderrors.Is(err, errors.ErrSettingNotFound) {
			return "", false, nil
		}
		return "", false, oops.With("platform", platform, "guild_id", guildID, "key", key).Wrap(err)
	}

	value = strings.TrimSpace(value)
	return value, value != "", nil
}

// NotificationChannel returns the channel configured to receive announcements.
func (s *Service) NotificationChannel(ctx context.Context, platform, guildID string) (string, bool, error) {
	return s.Get(ctx, platform, guildID, s.channelKey)
}

// SetNotificationChannel points the guild's announcements at channelID.
func (s *Service) SetNotificationChannel(ctx context.Context, platform, guildID, channelID string) error {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return oops.With("platform", platform, "guild_id", guildID).Errorf("channel ID is empty")
	}

	return s.repo.Set(ctx, domain.Setting{
		Platform: platform,
		GuildID:  guildID,
		Key:      s.channelKey,
		Value:    channelID,
	})
}

// ClearNotificationChannel stops announcements for the guild.
func (s *Service) ClearNotificationChannel(ctx context.Context, platform, guildID string) error {
	return s.repo.Delete(ctx, platform, guildID, s.channelKey)
}

// Guilds lists the guilds of platform that have a notification channel configured.
func (s *Service) Guilds(ctx context.Context, platform string) ([]string, error) {
	return s.repo.Guilds(ctx, platform, s.channelKey)
}
