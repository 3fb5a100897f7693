package service

import (
	"context"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

// RecipeGenerator produces recipes and nutrition analyses. Both methods
// always return a result.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, req types.GenerationRequest) *types.GeneratedRecipe
	AnalyzeNutrition(ctx context.Context, req types.NutritionRequest) *types.NutritionAnalysis
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, req types.GenerationRequest) (*types.RecipeWithNutrition, error)
	GenerateNutritionForRecipe(ctx context.Context, id string) (*types.NutritionData, error)
	ListRecipes(ctx context.Context, search types.RecipeSearch) ([]types.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*types.RecipeWithNutrition, error)
	UpdateRecipe(ctx context.Context, id string, req types.UpdateRecipeRequest) (*types.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

var (
	_ RecipeGenerator  = (*Generator)(nil)
	_ IRecipeService   = (*RecipeService)(nil)
	_ CompletionClient = (*LLMClient)(nil)
	_ DegradedStore    = (*RedisDegradedStore)(nil)
)
