package types

import (
	"strings"
	"time"
)

// RecipeCategory is the closed set of dish categories a recipe can be generated for
type RecipeCategory string

const (
	CategoryAppetizer RecipeCategory = "appetizer"
	CategoryMain      RecipeCategory = "main"
	CategoryDessert   RecipeCategory = "dessert"
)

var categoryLabels = map[RecipeCategory]string{
	CategoryAppetizer: "Entrée",
	CategoryMain:      "Plat",
	CategoryDessert:   "Dessert",
}

// ParseRecipeCategory accepts the canonical values as well as the French labels
// used by the web client ("Entrée", "Plat", "Dessert").
func ParseRecipeCategory(s string) (RecipeCategory, bool) {
	v := strings.TrimSpace(s)
	for c, label := range categoryLabels {
		if strings.EqualFold(v, string(c)) || v == label {
			return c, true
		}
	}
	return "", false
}

// Label returns the display label used in prompts and fallback recipe names
func (c RecipeCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Provenance tells whether a generated value came from the completion service
// or from local fallback synthesis.
type Provenance string

const (
	SourceModel    Provenance = "model"
	SourceFallback Provenance = "fallback"
)

// GenerationRequest is the input to recipe generation
type GenerationRequest struct {
	Ingredients         []string
	Servings            int
	DietaryRestrictions []string
	Category            RecipeCategory
}

// GeneratedRecipe is a recipe produced by the generation pipeline, not yet persisted
type GeneratedRecipe struct {
	Name            string     `json:"name"`
	Ingredients     []string   `json:"ingredients"`
	Instructions    string     `json:"instructions"`
	PreparationTime int        `json:"preparationTime"`
	CookingTime     int        `json:"cookingTime"`
	Source          Provenance `json:"-"`
}

// NutritionRequest is the input to nutrition analysis
type NutritionRequest struct {
	Ingredients []string
	Servings    int
}

// NutritionAnalysis is a per-serving nutritional breakdown. Vitamins and
// Minerals always carry the full fixed key sets.
type NutritionAnalysis struct {
	CaloriesPerServing float64            `json:"caloriesPerServing"`
	Proteins           float64            `json:"proteins"`
	Carbohydrates      float64            `json:"carbohydrates"`
	Fats               float64            `json:"fats"`
	Fiber              float64            `json:"fiber"`
	Vitamins           map[string]float64 `json:"vitamins"`
	Minerals           map[string]float64 `json:"minerals"`
	Source             Provenance         `json:"-"`
}

// Recipe represents a persisted recipe
type Recipe struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Ingredients         []string  `json:"ingredients"`
	Instructions        string    `json:"instructions"`
	Servings            int       `json:"servings"`
	DietaryRestrictions []string  `json:"dietaryRestrictions"`
	RecipeType          string    `json:"recipeType,omitempty"`
	PreparationTime     int       `json:"preparationTime"`
	CookingTime         int       `json:"cookingTime"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// NutritionData is a nutrition analysis attached to a recipe. Degraded is set
// when the analysis could not be persisted and carries a temporary ID.
type NutritionData struct {
	ID       string `json:"id"`
	RecipeID string `json:"recipeId,omitempty"`
	NutritionAnalysis
	AnalysisDate time.Time `json:"analysisDate"`
	Degraded     bool      `json:"degraded,omitempty"`
}

// RecipeWithNutrition is a recipe with its optional nutrition analysis.
// A nil Nutrition means no analysis has been generated yet.
type RecipeWithNutrition struct {
	Recipe
	Nutrition *NutritionData `json:"nutrition"`
}
