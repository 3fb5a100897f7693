package service

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

func TestFallbackRecipe(t *testing.T) {
	req := types.GenerationRequest{
		Ingredients: []string{"tomate", "basilic"},
		Servings:    2,
		Category:    types.CategoryAppetizer,
	}

	recipe := FallbackRecipe(req, rand.New(rand.NewSource(1)))

	assert.Equal(t, "Entrée aux tomate", recipe.Name)
	require.Len(t, recipe.Ingredients, len(req.Ingredients)+4)
	assert.Equal(t, "200g de tomate", recipe.Ingredients[0])
	assert.Equal(t, "200g de basilic", recipe.Ingredients[1])
	assert.Contains(t, recipe.Ingredients, "Herbes de Provence")
	assert.Len(t, strings.Split(recipe.Instructions, "\n"), 7)
	assert.True(t, strings.HasPrefix(recipe.Instructions, "Étape 1:"))
	assert.Equal(t, types.SourceFallback, recipe.Source)
}

func TestFallbackRecipe_TimesWithinCategoryRanges(t *testing.T) {
	tests := []struct {
		category         types.RecipeCategory
		prepMin, prepMax int
		cookMin, cookMax int
	}{
		{types.CategoryAppetizer, 10, 20, 10, 25},
		{types.CategoryMain, 15, 30, 20, 50},
		{types.CategoryDessert, 20, 40, 15, 35},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			for seed := int64(0); seed < 200; seed++ {
				recipe := FallbackRecipe(types.GenerationRequest{
					Ingredients: []string{"pommes"},
					Servings:    4,
					Category:    tt.category,
				}, rand.New(rand.NewSource(seed)))

				assert.GreaterOrEqual(t, recipe.PreparationTime, tt.prepMin)
				assert.LessOrEqual(t, recipe.PreparationTime, tt.prepMax)
				assert.GreaterOrEqual(t, recipe.CookingTime, tt.cookMin)
				assert.LessOrEqual(t, recipe.CookingTime, tt.cookMax)
			}
		})
	}
}

func TestFallbackRecipe_NoIngredients(t *testing.T) {
	recipe := FallbackRecipe(types.GenerationRequest{Servings: 1, Category: types.CategoryDessert}, rand.New(rand.NewSource(7)))

	assert.Equal(t, "Dessert aux ingrédients mélangés", recipe.Name)
	assert.Len(t, recipe.Ingredients, 4)
}

func TestFallbackNutrition(t *testing.T) {
	analysis := FallbackNutrition(types.NutritionRequest{
		Ingredients: []string{"a", "b", "c", "d"},
		Servings:    2,
	})

	assert.Equal(t, float64(100), analysis.CaloriesPerServing)
	assert.Equal(t, 3.8, analysis.Proteins)
	assert.Equal(t, 13.8, analysis.Carbohydrates)
	assert.Equal(t, 3.3, analysis.Fats)
	assert.Equal(t, 1.5, analysis.Fiber)
	assert.Equal(t, types.SourceFallback, analysis.Source)
	assertFixedKeySets(t, analysis)
}

func TestFallbackNutrition_ZeroServings(t *testing.T) {
	analysis := FallbackNutrition(types.NutritionRequest{
		Ingredients: []string{"a", "b", "c", "d"},
		Servings:    0,
	})

	assert.Equal(t, float64(200), analysis.CaloriesPerServing)
	assert.Equal(t, float64(3), analysis.Fiber)
}

func TestFallbackNutrition_DefaultsAreCopies(t *testing.T) {
	first := FallbackNutrition(types.NutritionRequest{Ingredients: []string{"a"}, Servings: 1})
	first.Vitamins["C"] = 999

	second := FallbackNutrition(types.NutritionRequest{Ingredients: []string{"a"}, Servings: 1})
	assert.Equal(t, float64(5), second.Vitamins["C"])
}
