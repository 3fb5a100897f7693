package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/alchemorsel-recettes/backend/internal/database"
	"github.com/pageza/alchemorsel-recettes/backend/internal/model"
	"github.com/pageza/alchemorsel-recettes/backend/internal/service"
	"github.com/pageza/alchemorsel-recettes/backend/internal/testdb"
	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

// These tests call the live completion service and only run when a key is set.
func liveGenerator(t *testing.T) (*service.Generator, *service.Metrics) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping live completion test in short mode")
	}
	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping live completion test - LLM_API_KEY not set")
	}

	log := zaptest.NewLogger(t)
	metrics := service.NewMetrics()
	client := service.NewLLMClient(service.LLMConfig{
		APIKey:  apiKey,
		APIURL:  os.Getenv("LLM_API_URL"),
		Model:   os.Getenv("LLM_MODEL"),
		Timeout: 60 * time.Second,
	}, log)
	return service.NewGenerator(client, log, service.WithMetrics(metrics)), metrics
}

func TestRecipeGeneration_Live(t *testing.T) {
	generator, _ := liveGenerator(t)
	req := types.GenerationRequest{
		Ingredients:         []string{"courgettes", "feta", "menthe"},
		Servings:            3,
		DietaryRestrictions: []string{"Végétarien"},
		Category:            types.CategoryAppetizer,
	}

	recipe := generator.GenerateRecipe(context.Background(), req)

	require.NotNil(t, recipe)
	assert.NotEmpty(t, recipe.Name)
	assert.NotEmpty(t, recipe.Ingredients)
	assert.NotEmpty(t, recipe.Instructions)
	assert.GreaterOrEqual(t, recipe.PreparationTime, 0)
	assert.GreaterOrEqual(t, recipe.CookingTime, 0)
	t.Logf("recipe %q resolved from %s", recipe.Name, recipe.Source)
}

func TestNutritionAnalysis_Live(t *testing.T) {
	generator, _ := liveGenerator(t)

	analysis := generator.AnalyzeNutrition(context.Background(), types.NutritionRequest{
		Ingredients: []string{"200g de riz basmati", "150g de blanc de poulet", "1 cuillère d'huile d'olive"},
		Servings:    2,
	})

	require.NotNil(t, analysis)
	assert.ElementsMatch(t, service.VitaminKeys, keys(analysis.Vitamins))
	assert.ElementsMatch(t, service.MineralKeys, keys(analysis.Minerals))
	assert.Greater(t, analysis.CaloriesPerServing, 0.0)
	t.Logf("analysis resolved from %s: %.1f kcal", analysis.Source, analysis.CaloriesPerServing)
}

func TestCreateRecipe_LiveOnSQLite(t *testing.T) {
	generator, _ := liveGenerator(t)
	db := testdb.SetupSQLite(t)
	recipes := service.NewRecipeService(database.NewGormGateway(db), generator, model.DefaultVocabulary(), nil, zaptest.NewLogger(t), nil)

	created, err := recipes.CreateRecipe(context.Background(), types.GenerationRequest{
		Ingredients: []string{"pommes", "cannelle"},
		Servings:    4,
		Category:    types.CategoryDessert,
	})
	require.NoError(t, err)

	fetched, err := recipes.GetRecipe(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, "Dessert", fetched.RecipeType)
	require.NotNil(t, fetched.Nutrition)
	assert.Equal(t, created.Nutrition.ID, fetched.Nutrition.ID)
}

func keys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
