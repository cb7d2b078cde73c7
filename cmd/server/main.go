package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tinyurl/internal/config"
	"tinyurl/internal/handlers"
	"tinyurl/internal/repository"
	"tinyurl/internal/services"
	"tinyurl/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}

// newClickLog picks the click record backend named by CLICK_STORE.
func newClickLog(cfg config.Config) (repository.ClickLog, error) {
	switch cfg.ClickStore {
	case "", "memory":
		return repository.NewMemoryClickLog(), nil
	case "sqlite":
		db, err := repository.InitClickDB(cfg.ClickDatabaseURL)
		if err != nil {
			return nil, err
		}
		return repository.NewGormClickLog(db), nil
	default:
		return nil, fmt.Errorf("unsupported click store: %s", cfg.ClickStore)
	}
}

func Run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	clickLog, err := newClickLog(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize click store: %w", err)
	}

	geo := services.NewGeoLookup(cfg.GeoIPDBPath, logger)
	if closer, ok := geo.(*services.GeoIPService); ok {
		defer closer.Close()
	}

	store := repository.NewStore(clickLog)
	auditService := services.NewAuditService(logger)
	codeGenerator := utils.NewCodeGenerator(cfg.CodeLength, cfg.CodeMaxAttempts)
	shortenerService := services.NewShortenerService(store, auditService, codeGenerator, cfg.BaseURL)

	h := handlers.NewHandler(
		cfg,
		logger,
		shortenerService,
		services.NewResolver(store),
		services.NewClickRecorder(store, geo, logger, cfg.MaskClickIP),
		services.NewManagementService(store, shortenerService, auditService),
		services.NewAnalyticsService(store),
		services.NewBulkService(store, auditService),
		services.NewDashboardService(store),
	)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.SetupRouter(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "click_store", cfg.ClickStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting")
	return nil
}
