package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexmail/alexmail-backend/internal/api"
	"github.com/alexmail/alexmail-backend/internal/config"
	"github.com/alexmail/alexmail-backend/internal/database"
	"github.com/alexmail/alexmail-backend/internal/repository"
	"github.com/alexmail/alexmail-backend/internal/services"
	"github.com/alexmail/alexmail-backend/internal/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWithValidation()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("starting mail backend server")
	cfg.LogConfig(logger)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.AttachmentStoragePath)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	e := api.NewRouter(&api.RouterConfig{
		DB:                db,
		FileStorage:       fileStorage,
		Logger:            logger,
		APIKey:            cfg.APIKey,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitBurst:    cfg.RateLimitBurst,
	})

	// The reaper gets its own service instance; the service carries no state
	// beyond its dependencies.
	mailRepo := repository.NewMailRepository(db)
	userRepo := repository.NewUserRepository(db)
	mailService := services.NewMailService(mailRepo, userRepo, fileStorage, logger)

	reaper := services.NewTrashReaper(mailService, services.TrashReaperConfig{
		Interval:  cfg.TrashPurgeInterval,
		Retention: cfg.TrashRetention,
	}, logger)
	reaper.Start()
	defer reaper.Stop()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		logger.Info("HTTP server listening", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
