package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", "discord_token: abc\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, "./bumped.json", cfg.CachePath)
	assert.Equal(t, "bumped", cfg.SettingsKey)
	assert.Equal(t, CachePolicyStrict, cfg.CachePolicy)
	assert.Equal(t, SettingsBackendFile, cfg.SettingsBackend)
	assert.Equal(t, AppEnvProduction, cfg.AppEnv)
	assert.Equal(t, 30*time.Second, cfg.FeedTimeoutDuration())
	assert.Equal(t, 120*time.Second, cfg.RunTimeoutDuration())
	assert.True(t, cfg.DiscordEnabled())
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.toml", `
feed_url = "https://example.com/file.xml"
cache_policy = "strict"
telegram_bot_token = "123:abc"
`)

	t.Setenv("FEED_URL", "https://example.com/env.xml")
	t.Setenv("CACHE_POLICY", "bootstrap")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/env.xml", cfg.FeedURL)
	assert.Equal(t, CachePolicyBootstrap, cfg.CachePolicy)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"discord_token": "abc", "settings_backend": "sqlite", "database_dsn": "/tmp/s.sqlite"}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SettingsBackendSqlite, cfg.SettingsBackend)
	assert.Equal(t, "/tmp/s.sqlite", cfg.DatabaseDSN)
}

func TestLoadRequiresAPlatform(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	path := writeConfig(t, "config.yaml", "feed_url: https://example.com/feed\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, errors.ErrNoPlatforms)
}

func TestLoadRejectsInvalidEnums(t *testing.T) {
	tests := map[string]string{
		"cache policy":     "discord_token: abc\ncache_policy: sometimes\n",
		"settings backend": "discord_token: abc\nsettings_backend: redis\n",
		"app env":          "discord_token: abc\napp_env: staging\n",
		"log level":        "discord_token: abc\nlog_level: loud\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
