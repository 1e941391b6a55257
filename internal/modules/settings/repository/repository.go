package repository

import (
	"context"

	"github.com/reshetovitsme/bump-notifier/internal/modules/settings/domain"
)

// Repository defines the interface for per-guild settings persistence.
// Get returns errors.ErrSettingNotFound when the key is not set.
type Repository interface {
	Get(ctx context.Context, platform, guildID, key string) (string, error)
	Set(ctx context.Context, setting domain.Setting) error
	Delete(ctx context.Context, platform, guildID, key string) error
	Guilds(ctx context.Context, platform, key string) ([]string, error)
	Close() error
}
