package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tasks-api/internal/cache"
	"tasks-api/internal/config"
	"tasks-api/internal/controller"
	"tasks-api/internal/database"
	"tasks-api/internal/feed"
	"tasks-api/internal/queue"
	"tasks-api/internal/repository"
	"tasks-api/internal/routes"
	"tasks-api/internal/service"
	"tasks-api/pkg/logger"
)

func main() {
	ctx := context.Background()
	cfg := config.Get()
	logger.Configure(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn(ctx, "JWT_SECRET not set; using the development default")
	}

	db, dialect, err := database.DB(ctx)
	if err != nil {
		logger.Error(ctx, "Database not available; exiting", "error", err)
		os.Exit(1)
	}
	if err := database.MigrateOrCreateSchema(ctx, db, dialect, cfg.BcryptCost); err != nil {
		logger.Error(ctx, "Schema migration failed", "error", err)
		os.Exit(1)
	}

	// Redis is optional; without it every import fetches the feed.
	var feedCache feed.Cache
	if rdb := cache.Client(ctx); rdb != nil {
		feedCache = cache.NewRawCache(rdb, time.Duration(cfg.FeedCacheTTL)*time.Second)
	}
	feedClient := feed.NewClient(cfg.FeedURL, time.Duration(cfg.FeedTimeout)*time.Second, feedCache)

	// Kafka is optional; without brokers no task events are emitted.
	var events service.EventPublisher
	if w := queue.Producer(ctx); w != nil {
		queue.EnsureTopic(ctx)
		events = queue.NewPublisher(w)
	}

	auth := service.NewAuthService(repository.NewUserRepository(db, dialect), cfg.JWTSecret, cfg.TokenTTL)
	tasks := service.NewTaskService(repository.NewTaskRepository(db, dialect), events)
	handlers := controller.NewHandlers(auth, tasks, feedClient, db)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(handlers, auth),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	if err := queue.Close(); err != nil {
		logger.Warn(ctx, "Kafka writer close failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warn(ctx, "Redis close failed", "error", err)
	}
	if err := database.Close(); err != nil {
		logger.Warn(ctx, "Database close failed", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}
