package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/restockd/stockwatch/internal/config"
	"github.com/restockd/stockwatch/internal/models"
	"github.com/restockd/stockwatch/internal/notifier"
	"github.com/restockd/stockwatch/internal/prober"
	"github.com/restockd/stockwatch/internal/repository"
	"github.com/restockd/stockwatch/internal/repository/file"
	"github.com/restockd/stockwatch/internal/repository/sqlite"
	"github.com/restockd/stockwatch/internal/server"
	"github.com/restockd/stockwatch/internal/services/checker"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const shutdownTimeout = 10 * time.Second

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	repo, err := newStateRepository(ctx, logger, cfg.State)
	if err != nil {
		log.Fatalf("Failed to init state repository: %v", err)
	}
	defer repo.Close()

	ntf, err := newNotifier(logger, cfg)
	if err != nil {
		log.Fatalf("Failed to init notifier: %v", err)
	}

	prb := prober.NewProber(
		logger,
		cfg.Product.URL,
		cfg.Product.Pincode,
		cfg.Probe.ScreenshotPath,
		cfg.Probe.Timeout,
		prober.DefaultRules(),
	)

	product := models.Product{Name: cfg.Product.Name, URL: cfg.Product.URL}
	chk := checker.NewChecker(logger, prb, repo, ntf, product)

	srv := server.New(logger, cfg.HTTPAddr, chk)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "addr", cfg.HTTPAddr)

	// Start the server in a goroutine to allow main to listen for signals.
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("HTTP server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Failed to stop HTTP server gracefully", "error", err)
	}

	// Log graceful shutdown completion.
	logger.Info("Application stopped gracefully.")
}

// newStateRepository selects the persistence backend from config.
func newStateRepository(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.State,
) (repository.StateRepository, error) {
	if cfg.Backend == config.BackendSQLite {
		return sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	}

	return file.NewRepository(logger, cfg.Path), nil
}

// newNotifier builds the email channel plus an optional telegram channel.
func newNotifier(logger *slog.Logger, cfg *config.Config) (notifier.Notifier, error) {
	targets := []notifier.Notifier{notifier.NewEmail(logger, cfg.SMTP)}

	if cfg.Tg.Token != "" {
		tg, err := notifier.NewTelegram(logger, cfg.Tg.Token, cfg.Tg.ChatID)
		if err != nil {
			return nil, err
		}
		targets = append(targets, tg)
	}

	return notifier.NewMulti(logger, targets...), nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
