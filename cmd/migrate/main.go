package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-recettes/backend/config"
	"github.com/pageza/alchemorsel-recettes/backend/internal/database"
	"github.com/pageza/alchemorsel-recettes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recettes/backend/internal/model"
)

func main() {
	reset := flag.Bool("reset", false, "Drop the recipe tables before migrating")
	flag.Parse()

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

	if *reset {
		if cfg.Environment.IsProduction() {
			zlog.Fatal("refusing to reset tables in production")
		}
		if err := db.Migrator().DropTable(&model.NutritionRecord{}, &model.RecipeRecord{}); err != nil {
			zlog.Fatal("failed to drop tables", zap.Error(err))
		}
		zlog.Info("dropped recipe tables")
	}

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}
	zlog.Info("migrations applied", zap.String("driver", cfg.DBDriver))
}
