package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giannis84/news-favourites/internal"
	"github.com/giannis84/news-favourites/internal/config"
	"github.com/giannis84/news-favourites/internal/database"
	"github.com/giannis84/news-favourites/internal/favourites"
	"github.com/giannis84/news-favourites/internal/logging"
	"github.com/giannis84/news-favourites/internal/metrics"
	"github.com/giannis84/news-favourites/internal/newsapi"
	"github.com/giannis84/news-favourites/internal/routes"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Initialize shared dependencies
	logger := logging.NewLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String(logging.ErrorKey, err.Error()))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.String("api_addr", cfg.APIAddr()),
		slog.String("health_addr", cfg.HealthAddr()),
		slog.String("storage_driver", cfg.Storage.Driver),
	)
	if cfg.NewsAPI.APIKey == "" {
		logger.Warn("NEWS_API_KEY is not set, news endpoints will answer 503")
	}

	// Open durable storage
	kv, err := database.Open(database.Options{
		Driver:      cfg.Storage.Driver,
		SQLitePath:  cfg.Storage.SQLitePath,
		PostgresDSN: cfg.PostgresConnString(),
		Namespace:   cfg.Storage.Namespace,
	})
	if err != nil {
		logger.Error("failed to initialise storage", slog.String(logging.ErrorKey, err.Error()))
		os.Exit(1)
	}
	defer kv.Close()
	logger.Info("storage ready")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// The favourites list is loaded once here and shared by every request.
	store := favourites.New(logging.NewContextWithLogger(context.Background(), logger), kv, favourites.WithRecorder(m))
	news := newsapi.NewClient(newsapi.Config{
		BaseURL:  cfg.NewsAPI.BaseURL,
		APIKey:   cfg.NewsAPI.APIKey,
		Country:  cfg.NewsAPI.Country,
		Timeout:  cfg.NewsAPI.Timeout,
		Recorder: m,
	})

	// Create health check and api http services
	healthService := internal.NewService(internal.ServiceConfig{
		Addr:   cfg.HealthAddr(),
		Logger: logger,
		Routes: routes.RegisterHealthRoutes(store, registry),
	})
	apiService := internal.NewService(internal.ServiceConfig{
		Addr:         cfg.APIAddr(),
		Logger:       logger,
		Routes:       routes.RegisterAPIRoutes(store, news, cfg.RateLimitConfig()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	})

	// Start http service threads
	go func() {
		if err := healthService.ListenAndServeWrapper("health check api"); err != nil && err != http.ErrServerClosed {
			logger.Error("health check service failed", slog.String(logging.ErrorKey, err.Error()))
			os.Exit(1)
		}
	}()
	go func() {
		if err := apiService.ListenAndServeWrapper("news api"); err != nil && err != http.ErrServerClosed {
			logger.Error("news service failed", slog.String(logging.ErrorKey, err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit

	// Shutdown http service threads gracefully
	logger.Info("shutting down service", slog.String("signal", receivedSignal.String()))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiService.Shutdown(ctx); err != nil {
		logger.Error("API service shutdown error", slog.String(logging.ErrorKey, err.Error()))
	}
	if err := healthService.Shutdown(ctx); err != nil {
		logger.Error("health service shutdown error", slog.String(logging.ErrorKey, err.Error()))
	}
	logger.Info("exiting...")
}
