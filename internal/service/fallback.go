package service

import (
	"math"
	"math/rand"
	"strings"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

const defaultMainIngredient = "ingrédients mélangés"

// Staples appended to every fallback recipe
var fallbackStaples = []string{
	"2 cuillères à soupe d'huile d'olive",
	"Sel et poivre selon le goût",
	"1 gousse d'ail",
	"Herbes de Provence",
}

var fallbackSteps = []string{
	"Étape 1: Préparer tous les ingrédients en les lavant et coupant si nécessaire.",
	"Étape 2: Faire chauffer l'huile dans une poêle à feu moyen.",
	"Étape 3: Ajouter l'ail émincé et faire revenir 1 minute.",
	"Étape 4: Incorporer les ingrédients principaux et cuire selon leur nature.",
	"Étape 5: Assaisonner avec sel, poivre et herbes de Provence.",
	"Étape 6: Laisser mijoter jusqu'à cuisson complète.",
	"Étape 7: Servir chaud avec accompagnement de votre choix.",
}

type minuteRange struct{ min, max int }

// Inclusive preparation and cooking time ranges per category
var fallbackTimes = map[types.RecipeCategory][2]minuteRange{
	types.CategoryAppetizer: {{10, 20}, {10, 25}},
	types.CategoryMain:      {{15, 30}, {20, 50}},
	types.CategoryDessert:   {{20, 40}, {15, 35}},
}

const (
	fallbackCaloriesPerIngredient = 50
	proteinEnergyShare            = 0.15
	carbohydrateEnergyShare       = 0.55
	fatEnergyShare                = 0.30
	kcalPerGramProtein            = 4
	kcalPerGramCarbohydrate       = 4
	kcalPerGramFat                = 9
)

// FallbackRecipe synthesizes a generic recipe from the request alone
func FallbackRecipe(req types.GenerationRequest, rnd *rand.Rand) *types.GeneratedRecipe {
	mainIngredient := defaultMainIngredient
	if len(req.Ingredients) > 0 && strings.TrimSpace(req.Ingredients[0]) != "" {
		mainIngredient = strings.TrimSpace(req.Ingredients[0])
	}

	ingredients := make([]string, 0, len(req.Ingredients)+len(fallbackStaples))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, "200g de "+strings.TrimSpace(ing))
	}
	ingredients = append(ingredients, fallbackStaples...)

	prep, cook := 15, 25
	if ranges, ok := fallbackTimes[req.Category]; ok {
		prep = between(rnd, ranges[0])
		cook = between(rnd, ranges[1])
	}

	return &types.GeneratedRecipe{
		Name:            req.Category.Label() + " aux " + mainIngredient,
		Ingredients:     ingredients,
		Instructions:    strings.Join(fallbackSteps, "\n"),
		PreparationTime: prep,
		CookingTime:     cook,
		Source:          types.SourceFallback,
	}
}

func between(rnd *rand.Rand, r minuteRange) int {
	return r.min + rnd.Intn(r.max-r.min+1)
}

// FallbackNutrition estimates a nutrition analysis from the ingredient count
func FallbackNutrition(req types.NutritionRequest) *types.NutritionAnalysis {
	servings := float64(req.Servings)
	if servings <= 0 {
		servings = 1
	}
	total := float64(len(req.Ingredients) * fallbackCaloriesPerIngredient)

	return &types.NutritionAnalysis{
		CaloriesPerServing: math.Round(total / servings),
		Proteins:           round1(total * proteinEnergyShare / kcalPerGramProtein / servings),
		Carbohydrates:      round1(total * carbohydrateEnergyShare / kcalPerGramCarbohydrate / servings),
		Fats:               round1(total * fatEnergyShare / kcalPerGramFat / servings),
		Fiber:              round1(defaultFiber / servings),
		Vitamins:           copyDefaults(VitaminKeys, vitaminDefaults),
		Minerals:           copyDefaults(MineralKeys, mineralDefaults),
		Source:             types.SourceFallback,
	}
}

func copyDefaults(keys []string, defaults map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(keys))
	for _, k := range keys {
		out[k] = defaults[k]
	}
	return out
}
