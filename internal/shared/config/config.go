package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// DefaultFeedURL is the feed the notifier watches unless configured otherwise.
const DefaultFeedURL = "http://bumped.org/psublog/feed/"

type Config struct {
	FeedURL          string          `koanf:"feed_url"`
	FeedTimeout      int             `koanf:"feed_timeout"`
	UserAgent        string          `koanf:"user_agent"`
	CachePath        string          `koanf:"cache_path"`
	CachePolicy      CachePolicy     `koanf:"cache_policy"`
	SettingsKey      string          `koanf:"settings_key"`
	SettingsBackend  SettingsBackend `koanf:"settings_backend"`
	StoragePath      string          `koanf:"storage_path"`
	DatabaseDSN      string          `koanf:"database_dsn"`
	Schedule         string          `koanf:"schedule"`
	RunTimeout       int             `koanf:"run_timeout"`
	DiscordToken     string          `koanf:"discord_token"`
	TelegramBotToken string          `koanf:"telegram_bot_token"`
	HTTPPort         string          `koanf:"http_port"`
	HistoryLimit     int             `koanf:"history_limit"`
	LogLevel         string          `koanf:"log_level"`
	AppEnv           AppEnv          `koanf:"app_env"`
}

var defaults = map[string]any{
	"feed_url":         DefaultFeedURL,
	"feed_timeout":     30,
	"user_agent":       "bump-notifier/1.0",
	"cache_path":       "./bumped.json",
	"cache_policy":     string(CachePolicyStrict),
	"settings_key":     "bumped",
	"settings_backend": string(SettingsBackendFile),
	"storage_path":     "./data",
	"database_dsn":     "./data/settings.sqlite",
	"schedule":         "*/10 * * * *",
	"run_timeout":      120,
	"http_port":        "8080",
	"history_limit":    50,
	"log_level":        "info",
	"app_env":          string(AppEnvProduction),
}

// Load reads the configuration from path (or the first config file found in the
// working directory when path is empty) and then from environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}
	if path != "" {
		configFiles = []string{path}
	}

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})
	if path != "" && !found {
		return nil, oops.With("config_file", path).Errorf("config file does not exist")
	}

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	for key, value := range defaults {
		if !k.Exists(key) || k.String(key) == "" && key != "http_port" {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) normalize() error {
	c.FeedURL = strings.TrimSpace(c.FeedURL)
	c.DiscordToken = strings.TrimSpace(c.DiscordToken)
	c.TelegramBotToken = strings.TrimSpace(c.TelegramBotToken)
	c.HTTPPort = strings.TrimSpace(c.HTTPPort)

	appEnv, err := ParseAppEnv(string(c.AppEnv))
	if err != nil {
		return oops.With("app_env", c.AppEnv).Wrap(err)
	}
	c.AppEnv = appEnv

	policy, err := ParseCachePolicy(string(c.CachePolicy))
	if err != nil {
		return oops.With("cache_policy", c.CachePolicy).Wrap(err)
	}
	c.CachePolicy = policy

	backend, err := ParseSettingsBackend(string(c.SettingsBackend))
	if err != nil {
		return oops.With("settings_backend", c.SettingsBackend).Wrap(err)
	}
	c.SettingsBackend = backend

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return oops.With("log_level", c.LogLevel).Wrap(err)
	}

	if c.FeedURL == "" {
		return errors.ErrMissingFeedURL
	}

	if c.DiscordToken == "" && c.TelegramBotToken == "" {
		return errors.ErrNoPlatforms
	}

	return nil
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) FeedTimeoutDuration() time.Duration {
	return time.Duration(c.FeedTimeout) * time.Second
}

func (c *Config) RunTimeoutDuration() time.Duration {
	return time.Duration(c.RunTimeout) * time.Second
}

func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}
