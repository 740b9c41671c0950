package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Houeta/collection-desk/internal/bot"
	"github.com/Houeta/collection-desk/internal/commerce"
	"github.com/Houeta/collection-desk/internal/config"
	"github.com/Houeta/collection-desk/internal/repository/sqlite"
	"github.com/Houeta/collection-desk/internal/server"
	"github.com/Houeta/collection-desk/internal/services/auth"
	"github.com/Houeta/collection-desk/internal/services/editor"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine, the environment may be set another way.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "Application stopped with an error", "error", err)
		stop()
		os.Exit(1)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// run wires the components and blocks until ctx is canceled or one of them fails.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	lang, err := language.Parse(cfg.Locale)
	if err != nil {
		logger.WarnContext(ctx, "Invalid locale, falling back to Turkish", "locale", cfg.Locale, "error", err)
		lang = language.Turkish
	}

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Error("Failed to close storage", "error", closeErr)
		}
	}()

	client := commerce.NewClient(logger, cfg.API.URL, cfg.API.Timeout)
	authService := auth.NewService(logger, client, repo, cfg.Session.TTL)
	workspace := editor.NewWorkspace(logger, client, editor.Options{
		PageSize: cfg.Editor.PageSize,
		Language: lang,
	})

	srv, err := server.New(
		logger,
		authService,
		workspace,
		auth.NewCookieCodec(cfg.Session.Secret, cfg.Session.TTL, cfg.Env == envProd),
		server.Options{
			Addr:                cfg.HTTPAddr,
			LoginRate:           cfg.Session.LoginRate,
			CollectionsPageSize: cfg.Editor.CollectionsPageSize,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to init http server: %w", err)
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error { return srv.Run(gctx) })
	group.Go(func() error {
		authService.RunJanitor(gctx, cfg.Session.CleanupInterval)
		return nil
	})

	if cfg.Tg.Token != "" {
		deskBot, botErr := bot.NewBot(
			logger,
			cfg.Tg.Token,
			cfg.Tg.Timeout,
			authService,
			workspace,
			cfg.Editor.CollectionsPageSize,
		)
		if botErr != nil {
			return fmt.Errorf("failed to init bot: %w", botErr)
		}

		// Start the bot in a goroutine to allow the group to listen for cancellation.
		group.Go(func() error {
			deskBot.Start()
			return nil
		})
		group.Go(func() error {
			<-gctx.Done()
			// Stop the bot gracefully.
			deskBot.Stop()
			return nil
		})
	} else {
		logger.InfoContext(ctx, "Telegram token is empty, the bot is disabled")
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "addr", cfg.HTTPAddr)

	if err = group.Wait(); err != nil {
		return fmt.Errorf("application failed: %w", err)
	}

	return nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelWarn,
			ReplaceAttr: dropTime,
		}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelError,
			ReplaceAttr: dropTime,
		}))

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

// dropTime removes the timestamp; the log collector adds its own.
func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
