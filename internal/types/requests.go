package types

import "strings"

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Ingredients         []string `json:"ingredients" binding:"required,min=1,dive,required"`
	Servings            int      `json:"servings" binding:"required,min=1,max=12"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	RecipeType          string   `json:"recipeType" binding:"required,recipecategory"`
}

// GenerationRequest converts the body into a generation request. RecipeType is
// expected to have passed binding validation.
func (r CreateRecipeRequest) GenerationRequest() GenerationRequest {
	category, _ := ParseRecipeCategory(r.RecipeType)
	return GenerationRequest{
		Ingredients:         append([]string(nil), r.Ingredients...),
		Servings:            r.Servings,
		DietaryRestrictions: append([]string(nil), r.DietaryRestrictions...),
		Category:            category,
	}
}

// UpdateRecipeRequest represents the request body for a partial recipe update.
// Nil fields are left untouched.
type UpdateRecipeRequest struct {
	Name                *string  `json:"name"`
	Ingredients         []string `json:"ingredients"`
	Instructions        *string  `json:"instructions"`
	Servings            *int     `json:"servings" binding:"omitempty,min=1,max=12"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	RecipeType          *string  `json:"recipeType"`
}

// RecipeSearch holds the optional filters of a recipe listing
type RecipeSearch struct {
	Name                string   `form:"name"`
	Ingredient          string   `form:"ingredient"`
	RecipeType          string   `form:"recipeType"`
	DietaryRestrictions []string `form:"dietaryRestrictions"`
}

// Restrictions returns the dietary restriction filters, splitting
// comma-separated query values and dropping blanks.
func (s RecipeSearch) Restrictions() []string {
	var out []string
	for _, raw := range s.DietaryRestrictions {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
