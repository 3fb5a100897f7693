package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecipeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want RecipeCategory
		ok   bool
	}{
		{in: "main", want: CategoryMain, ok: true},
		{in: " Dessert ", want: CategoryDessert, ok: true},
		{in: "APPETIZER", want: CategoryAppetizer, ok: true},
		{in: "Entrée", want: CategoryAppetizer, ok: true},
		{in: "Plat", want: CategoryMain, ok: true},
		{in: "Plat principal", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseRecipeCategory(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRecipeCategory_Label(t *testing.T) {
	assert.Equal(t, "Entrée", CategoryAppetizer.Label())
	assert.Equal(t, "Plat", CategoryMain.Label())
	assert.Equal(t, "brunch", RecipeCategory("brunch").Label())
}

func TestRecipeSearch_Restrictions(t *testing.T) {
	s := RecipeSearch{DietaryRestrictions: []string{"Vegan, Sans gluten", " ", "Halal"}}
	assert.Equal(t, []string{"Vegan", "Sans gluten", "Halal"}, s.Restrictions())
	assert.Nil(t, RecipeSearch{}.Restrictions())
}

func TestCreateRecipeRequest_GenerationRequest(t *testing.T) {
	req := CreateRecipeRequest{
		Ingredients: []string{"riz"},
		Servings:    3,
		RecipeType:  "Dessert",
	}

	got := req.GenerationRequest()

	assert.Equal(t, CategoryDessert, got.Category)
	assert.Equal(t, 3, got.Servings)
	assert.Equal(t, []string{"riz"}, got.Ingredients)
	assert.Nil(t, got.DietaryRestrictions)
}
