package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-recettes/backend/config"
	"github.com/pageza/alchemorsel-recettes/backend/internal/database"
	"github.com/pageza/alchemorsel-recettes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recettes/backend/internal/model"
	"github.com/pageza/alchemorsel-recettes/backend/internal/service"
	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

var seedRequests = []types.GenerationRequest{
	{Ingredients: []string{"poireaux", "pommes de terre", "crème fraîche"}, Servings: 4, Category: types.CategoryAppetizer},
	{Ingredients: []string{"tomates", "mozzarella", "basilic"}, Servings: 2, DietaryRestrictions: []string{"Végétarien"}, Category: types.CategoryAppetizer},
	{Ingredients: []string{"poulet", "citron", "thym"}, Servings: 4, DietaryRestrictions: []string{"Sans gluten"}, Category: types.CategoryMain},
	{Ingredients: []string{"saumon", "riz", "brocolis"}, Servings: 2, Category: types.CategoryMain},
	{Ingredients: []string{"pois chiches", "lait de coco", "curry"}, Servings: 4, DietaryRestrictions: []string{"Vegan"}, Category: types.CategoryMain},
	{Ingredients: []string{"boeuf", "carottes", "vin rouge"}, Servings: 6, Category: types.CategoryMain},
	{Ingredients: []string{"lentilles", "oignon", "cumin"}, Servings: 4, DietaryRestrictions: []string{"Vegan", "Sans gluten"}, Category: types.CategoryMain},
	{Ingredients: []string{"pommes", "beurre", "farine"}, Servings: 6, Category: types.CategoryDessert},
	{Ingredients: []string{"chocolat noir", "oeufs", "sucre"}, Servings: 4, DietaryRestrictions: []string{"Sans gluten"}, Category: types.CategoryDessert},
	{Ingredients: []string{"fraises", "yaourt", "miel"}, Servings: 2, DietaryRestrictions: []string{"Végétarien"}, Category: types.CategoryDessert},
}

func main() {
	count := flag.Int("count", len(seedRequests), "Number of recipes to generate")
	batchSize := flag.Int("batch", 5, "Number of recipes generated concurrently")
	pause := flag.Duration("pause", 2*time.Second, "Delay between batches")
	flag.Parse()

	batches, err := batchBounds(*count, *batchSize)
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

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

	client := service.NewLLMClient(service.LLMConfig{
		APIKey:  cfg.LLMAPIKey,
		APIURL:  cfg.LLMAPIURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, zlog)
	recipes := service.NewRecipeService(
		database.NewGormGateway(db),
		service.NewGenerator(client, zlog),
		model.DefaultVocabulary(),
		nil,
		zlog,
		nil,
	)

	ctx := context.Background()
	var mu sync.Mutex
	created := 0

	for n, bounds := range batches {
		from, to := bounds[0], bounds[1]
		zlog.Info("generating batch", zap.Int("from", from+1), zap.Int("to", to))

		var wg sync.WaitGroup
		for j := from; j < to; j++ {
			wg.Add(1)
			go func(req types.GenerationRequest) {
				defer wg.Done()
				recipe, err := recipes.CreateRecipe(ctx, req)
				if err != nil {
					zlog.Error("failed to seed recipe", zap.Strings("ingredients", req.Ingredients), zap.Error(err))
					return
				}
				zlog.Info("seeded recipe", zap.String("recipe_id", recipe.ID), zap.String("name", recipe.Name))
				mu.Lock()
				created++
				mu.Unlock()
			}(seedRequests[j%len(seedRequests)])
		}
		wg.Wait()

		if n < len(batches)-1 {
			time.Sleep(*pause)
		}
	}

	zlog.Info("seeding finished", zap.Int("created", created), zap.Int("requested", *count))
}

// batchBounds splits count recipes into [from, to) ranges of at most size
func batchBounds(count, size int) ([][2]int, error) {
	if size < 1 {
		return nil, errors.New("batch size must be at least 1")
	}
	if count < 0 {
		return nil, errors.New("count must not be negative")
	}

	var out [][2]int
	for from := 0; from < count; from += size {
		to := from + size
		if to > count {
			to = count
		}
		out = append(out, [2]int{from, to})
	}
	return out, nil
}
