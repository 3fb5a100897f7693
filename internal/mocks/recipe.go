package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, req types.GenerationRequest) (*types.RecipeWithNutrition, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeWithNutrition), args.Error(1)
}

// GenerateNutritionForRecipe mocks the GenerateNutritionForRecipe method
func (m *MockRecipeService) GenerateNutritionForRecipe(ctx context.Context, id string) (*types.NutritionData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.NutritionData), args.Error(1)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, search types.RecipeSearch) ([]types.Recipe, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id string) (*types.RecipeWithNutrition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeWithNutrition), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id string, req types.UpdateRecipeRequest) (*types.Recipe, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecipeGenerator is a mock implementation of the generation pipeline
type MockRecipeGenerator struct {
	mock.Mock
}

// GenerateRecipe mocks the GenerateRecipe method
func (m *MockRecipeGenerator) GenerateRecipe(ctx context.Context, req types.GenerationRequest) *types.GeneratedRecipe {
	args := m.Called(ctx, req)
	return args.Get(0).(*types.GeneratedRecipe)
}

// AnalyzeNutrition mocks the AnalyzeNutrition method
func (m *MockRecipeGenerator) AnalyzeNutrition(ctx context.Context, req types.NutritionRequest) *types.NutritionAnalysis {
	args := m.Called(ctx, req)
	return args.Get(0).(*types.NutritionAnalysis)
}
