package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

func TestBuildRecipePrompt(t *testing.T) {
	req := types.GenerationRequest{
		Ingredients: []string{"poireaux", "pommes de terre", "crème fraîche"},
		Servings:    4,
		Category:    types.CategoryMain,
	}

	prompt := BuildRecipePrompt(req)

	for _, ing := range req.Ingredients {
		assert.Contains(t, prompt, ing)
	}
	assert.Contains(t, prompt, "NOMBRE DE PERSONNES : 4")
	assert.Contains(t, prompt, "TYPE DE PLAT : Plat")
	assert.NotContains(t, prompt, "Restrictions alimentaires")
	assert.Contains(t, prompt, `"preparationTime": [minutes, nombre entier]`)
	assert.Contains(t, prompt, `"cookingTime": [minutes, nombre entier]`)
	assert.Contains(t, prompt, "JSON uniquement, sans texte supplémentaire")
	assert.Equal(t, prompt, BuildRecipePrompt(req))
}

func TestBuildRecipePrompt_Restrictions(t *testing.T) {
	prompt := BuildRecipePrompt(types.GenerationRequest{
		Ingredients:         []string{"tofu"},
		Servings:            2,
		DietaryRestrictions: []string{"Vegan", "Sans gluten"},
		Category:            types.CategoryAppetizer,
	})

	assert.Contains(t, prompt, "Restrictions alimentaires à respecter ABSOLUMENT : Vegan, Sans gluten")
	assert.Contains(t, prompt, "TYPE DE PLAT : Entrée")
}

func TestBuildNutritionPrompt(t *testing.T) {
	req := types.NutritionRequest{
		Ingredients: []string{"200g de riz", "1 oignon"},
		Servings:    3,
	}

	prompt := BuildNutritionPrompt(req)

	assert.Contains(t, prompt, "INGRÉDIENTS : 200g de riz, 1 oignon")
	assert.Contains(t, prompt, "NOMBRE DE PORTIONS : 3")
	assert.Contains(t, prompt, "[grammes avec 1 décimale]")
	for _, key := range append(append([]string{}, VitaminKeys...), MineralKeys...) {
		assert.Contains(t, prompt, `"`+key+`": [milligrammes]`)
	}
	assert.Contains(t, prompt, "JSON uniquement")
	assert.Equal(t, prompt, BuildNutritionPrompt(req))
}
