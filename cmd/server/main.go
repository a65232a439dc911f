package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/forgo/bookshelf/internal/config"
	"github.com/forgo/bookshelf/internal/facade"
	"github.com/forgo/bookshelf/internal/handler"
	"github.com/forgo/bookshelf/internal/logging"
	"github.com/forgo/bookshelf/internal/metrics"
	"github.com/forgo/bookshelf/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", logging.FormatJSON).Fatal("failed to load config", zap.Error(err))
	}

	// Initialize structured logging
	logger, restore := logging.Initialize(cfg.Log.Level, logging.Format(cfg.LogFormat()))
	defer restore()
	defer func() { _ = logger.Sync() }()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	// Initialize storage backend
	ctx, cancelConnect := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStorage(ctx, cfg)
	cancelConnect()
	if err != nil {
		logger.Error("failed to open storage",
			zap.String("backend", cfg.Storage.Backend),
			zap.Error(err))
		os.Exit(1)
	}
	defer func() { _ = store.close() }()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// Initialize services
	personService := service.NewPersonService(service.PersonServiceConfig{
		Repo: store.persons,
	})
	bookService := service.NewBookService(service.BookServiceConfig{
		Repo: store.books,
	})

	users := facade.New(facade.Config{
		Persons: personService,
		Books:   bookService,
		Metrics: m,
		Backend: cfg.Storage.Backend,
	})

	// Initialize handlers and routes
	router := handler.NewRouter(handler.RouterConfig{
		Users:          handler.NewUserHandler(users),
		Health:         handler.NewHealthHandler(store.ready),
		Metrics:        m,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env),
			zap.String("backend", cfg.Storage.Backend),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
