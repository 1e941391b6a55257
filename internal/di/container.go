package di

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	cacheRepo "github.com/reshetovitsme/bump-notifier/internal/modules/cache/repository"
	feedService "github.com/reshetovitsme/bump-notifier/internal/modules/feed/service"
	historyRepo "github.com/reshetovitsme/bump-notifier/internal/modules/history/repository"
	historyService "github.com/reshetovitsme/bump-notifier/internal/modules/history/service"
	notifierService "github.com/reshetovitsme/bump-notifier/internal/modules/notifier/service"
	settingsRepo "github.com/reshetovitsme/bump-notifier/internal/modules/settings/repository"
	settingsService "github.com/reshetovitsme/bump-notifier/internal/modules/settings/service"
	"github.com/reshetovitsme/bump-notifier/internal/scheduler"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/reshetovitsme/bump-notifier/internal/transport/discord"
	httpServer "github.com/reshetovitsme/bump-notifier/internal/transport/http"
	"github.com/reshetovitsme/bump-notifier/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

const platformConnectTimeout = 30 * time.Second

// Setup initializes the dependency injection container. ctx bounds the
// lifetime of long-running components such as the scheduler.
func Setup(ctx context.Context, configPath string) (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	do.Provide(injector, func(i do.Injector) (*slog.Logger, error) {
		return slog.Default(), nil
	})

	// Register Cache Repository
	do.Provide(injector, func(i do.Injector) (*cacheRepo.FileStorage, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := cacheRepo.NewFileStorage(cfg.CachePath)
		if err != nil {
			return nil, oops.With("cache_path", cfg.CachePath, "context", "failed to initialize cache repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Settings Repository
	do.Provide(injector, func(i do.Injector) (settingsRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*slog.Logger](i)

		if cfg.SettingsBackend == config.SettingsBackendFile {
			repo, err := settingsRepo.NewFileStorage(cfg.StoragePath)
			if err != nil {
				return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize settings repository").Wrap(err)
			}
			return repo, nil
		}

		repo, err := settingsRepo.NewSQLStorage(ctx, cfg.SettingsBackend, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, oops.With("settings_backend", cfg.SettingsBackend, "context", "failed to initialize settings repository").Wrap(err)
		}
		return repo, nil
	})

	// Register History Repository
	do.Provide(injector, func(i do.Injector) (historyRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := historyRepo.NewFileStorage(cfg.StoragePath, cfg.HistoryLimit)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize history repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Settings Service
	do.Provide(injector, func(i do.Injector) (*settingsService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[settingsRepo.Repository](i)
		return settingsService.New(cfg, repo), nil
	})

	// Register History Service
	do.Provide(injector, func(i do.Injector) (*historyService.Service, error) {
		repo := do.MustInvoke[historyRepo.Repository](i)
		return historyService.New(repo), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*slog.Logger](i)
		return feedService.New(cfg, log), nil
	})

	// Register Discord Platform; the session is opened by OpenPlatforms
	do.Provide(injector, func(i do.Injector) (*discord.Platform, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*slog.Logger](i)
		return discord.New(cfg.DiscordToken, log)
	})

	do.Provide(injector, func(i do.Injector) (*discord.Commands, error) {
		settings := do.MustInvoke[*settingsService.Service](i)
		log := do.MustInvoke[*slog.Logger](i)
		return discord.NewCommands(settings, log), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegram.Handler, error) {
		settings := do.MustInvoke[*settingsService.Service](i)
		log := do.MustInvoke[*slog.Logger](i)
		return telegram.New(settings, log), nil
	})

	// Register Bot
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		telegramHandler := do.MustInvoke[*telegram.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(telegramHandler.HandleUpdate),
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		telegramHandler.RegisterCommands(b)

		return b, nil
	})

	do.Provide(injector, func(i do.Injector) (*telegram.Platform, error) {
		b := do.MustInvoke[*bot.Bot](i)
		settings := do.MustInvoke[*settingsService.Service](i)
		log := do.MustInvoke[*slog.Logger](i)
		return telegram.NewPlatform(b, settings, log), nil
	})

	// Register the enabled chat platforms
	do.Provide(injector, func(i do.Injector) ([]notifierService.Platform, error) {
		cfg := do.MustInvoke[*config.Config](i)

		var platforms []notifierService.Platform

		if cfg.DiscordEnabled() {
			platform, err := do.Invoke[*discord.Platform](i)
			if err != nil {
				return nil, err
			}
			platforms = append(platforms, platform)
		}

		if cfg.TelegramEnabled() {
			platform, err := do.Invoke[*telegram.Platform](i)
			if err != nil {
				return nil, err
			}
			platforms = append(platforms, platform)
		}

		return platforms, nil
	})

	// Register Notifier Service
	do.Provide(injector, func(i do.Injector) (*notifierService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		platforms, err := do.Invoke[[]notifierService.Platform](i)
		if err != nil {
			return nil, err
		}

		return notifierService.New(
			cfg,
			do.MustInvoke[*feedService.Service](i),
			do.MustInvoke[*cacheRepo.FileStorage](i),
			do.MustInvoke[*settingsService.Service](i),
			do.MustInvoke[*historyService.Service](i),
			platforms,
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	// Register Scheduler
	do.Provide(injector, func(i do.Injector) (*scheduler.Scheduler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		notifier, err := do.Invoke[*notifierService.Service](i)
		if err != nil {
			return nil, err
		}
		log := do.MustInvoke[*slog.Logger](i)
		return scheduler.New(ctx, cfg, notifier, log), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		server := httpServer.New(
			cfg,
			do.MustInvoke[*historyService.Service](i),
			do.MustInvoke[*cacheRepo.FileStorage](i),
			do.MustInvoke[*scheduler.Scheduler](i),
		)
		server.SetLogger(do.MustInvoke[*slog.Logger](i))
		return server, nil
	})

	return injector, nil
}

// OpenPlatforms connects the gateway-based platforms. Telegram needs no
// session for sending.
func OpenPlatforms(ctx context.Context, injector do.Injector) error {
	cfg := do.MustInvoke[*config.Config](injector)
	if !cfg.DiscordEnabled() {
		return nil
	}

	platform, err := do.Invoke[*discord.Platform](injector)
	if err != nil {
		return err
	}

	openCtx, cancel := context.WithTimeout(ctx, platformConnectTimeout)
	defer cancel()

	return platform.Open(openCtx)
}

// Shutdown closes platform sessions and storage. Long-running components are
// stopped by their owner before this is called.
func Shutdown(injector do.Injector) error {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return nil
	}

	var errs []error

	if cfg.DiscordEnabled() {
		if platform, err := do.Invoke[*discord.Platform](injector); err == nil && platform != nil {
			if err := platform.Close(); err != nil {
				errs = append(errs, oops.With("context", "failed to close discord session").Wrap(err))
			}
		}
	}

	if repo, err := do.Invoke[settingsRepo.Repository](injector); err == nil && repo != nil {
		if err := repo.Close(); err != nil {
			errs = append(errs, oops.With("context", "failed to close settings repository").Wrap(err))
		}
	}

	return stderrors.Join(errs...)
}
