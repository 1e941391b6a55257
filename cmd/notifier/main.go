package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jessevdk/go-flags"
	"github.com/reshetovitsme/bump-notifier/internal/di"
	"github.com/reshetovitsme/bump-notifier/internal/scheduler"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/reshetovitsme/bump-notifier/internal/transport/discord"
	httpServer "github.com/reshetovitsme/bump-notifier/internal/transport/http"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
)

var version = "dev"

type options struct {
	Config  string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to a yaml, json or toml config file"`
	Once    bool   `long:"once" description:"Run the notifier once and exit"`
	Version bool   `short:"v" long:"version" description:"Print the version and exit"`
}

func main() {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if opts.Version {
		fmt.Println(version)
		return
	}

	setupLogger(config.AppEnvLocal, slog.LevelInfo)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, opts))
}

func run(ctx context.Context, opts options) int {
	injector, err := di.Setup(ctx, opts.Config)
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		return 1
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}
	setupLogger(cfg.AppEnv, cfg.Level())

	if err := di.OpenPlatforms(ctx, injector); err != nil {
		slog.Error("Failed to connect chat platforms", "error", err)
		return 1
	}

	sched, err := do.Invoke[*scheduler.Scheduler](injector)
	if err != nil {
		slog.Error("Failed to initialize notifier", "error", err)
		return 1
	}

	if opts.Once {
		runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeoutDuration())
		defer cancel()

		if _, err := sched.RunNow(runCtx); err != nil {
			return 1
		}
		return 0
	}

	return serve(ctx, cfg, injector, sched)
}

func serve(ctx context.Context, cfg *config.Config, injector do.Injector, sched *scheduler.Scheduler) int {
	if cfg.DiscordEnabled() {
		platform := do.MustInvoke[*discord.Platform](injector)
		if err := do.MustInvoke[*discord.Commands](injector).Register(platform.Session()); err != nil {
			slog.Error("Failed to register discord commands", "error", err)
		}
	}

	if cfg.TelegramEnabled() {
		b := do.MustInvoke[*bot.Bot](injector)
		go b.Start(ctx)
	}

	if err := sched.Start(); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		return 1
	}
	defer sched.Stop()

	var server *httpServer.Server
	if cfg.HTTPPort != "" {
		server = do.MustInvoke[*httpServer.Server](injector)
		go func() {
			if err := server.Start(); err != nil {
				slog.Error("HTTP server stopped", "error", err)
			}
		}()
	}

	slog.Info("Application started",
		"schedule", cfg.Schedule,
		"port", cfg.HTTPPort,
		"discord", cfg.DiscordEnabled(),
		"telegram", cfg.TelegramEnabled())
	slog.Info("Press Ctrl+C to stop")

	<-ctx.Done()
	slog.Info("Shutting down...")

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to stop HTTP server", "error", err)
		}
	}

	return 0
}

func setupLogger(env config.AppEnv, level slog.Level) {
	slog.SetDefault(slog.New(newLogHandler(env, level, os.Stdout, os.Stderr)))
}

// newLogHandler logs to stdout as JSON in production and as text elsewhere,
// with source locations in development. Errors are also written to stderr as JSON.
func newLogHandler(env config.AppEnv, level slog.Level, stdout, stderr io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var primary slog.Handler
	switch env {
	case config.AppEnvProduction:
		primary = slog.NewJSONHandler(stdout, opts)
	case config.AppEnvDevelopment:
		opts.AddSource = true
		primary = slog.NewTextHandler(stdout, opts)
	default:
		primary = slog.NewTextHandler(stdout, opts)
	}

	errorHandler := slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slogmulti.Fanout(primary, errorHandler)
}
