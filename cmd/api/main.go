package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-recettes/backend/config"
	"github.com/pageza/alchemorsel-recettes/backend/internal/database"
	"github.com/pageza/alchemorsel-recettes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recettes/backend/internal/model"
	"github.com/pageza/alchemorsel-recettes/backend/internal/server"
	"github.com/pageza/alchemorsel-recettes/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Environment.IsDevelopment(),
	})
	defer zlog.Sync()

	db, err := database.Open(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis only holds degraded nutrition; run without it when unreachable.
	var rdb *redis.Client
	var degraded service.DegradedStore
	if client, err := database.NewRedisClient(cfg, zlog); err != nil {
		zlog.Warn("redis unavailable, degraded nutrition will not be kept", zap.Error(err))
	} else {
		rdb = client
		degraded = service.NewRedisDegradedStore(client)
		defer client.Close()
	}

	if cfg.LLMAPIKey == "" {
		zlog.Warn("no completion API key configured, generations will use fallback output")
	}

	metrics := service.NewMetrics()
	client := service.NewLLMClient(service.LLMConfig{
		APIKey:  cfg.LLMAPIKey,
		APIURL:  cfg.LLMAPIURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, zlog)
	generator := service.NewGenerator(client, zlog, service.WithMetrics(metrics))
	recipes := service.NewRecipeService(
		database.NewGormGateway(db),
		generator,
		model.DefaultVocabulary(),
		degraded,
		zlog,
		metrics,
	)

	srv, err := server.New(cfg, server.Dependencies{
		DB:      db,
		Redis:   rdb,
		Recipes: recipes,
		Metrics: metrics,
	}, zlog)
	if err != nil {
		zlog.Fatal("failed to create server", zap.Error(err))
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server shutdown error", zap.Error(err))
	}
	zlog.Info("server stopped")
}
