package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

const (
	DefaultPreparationTime = 20
	DefaultCookingTime     = 25

	defaultCalories      = 200
	defaultProteins      = 10
	defaultCarbohydrates = 30
	defaultFats          = 8
	defaultFiber         = 3
)

// Fixed key sets of a nutrition analysis, in display order
var (
	VitaminKeys = []string{"A", "C", "D", "E", "B1", "B2", "B6", "B12", "Folate"}
	MineralKeys = []string{"Calcium", "Iron", "Magnesium", "Potassium", "Zinc"}
)

var vitaminDefaults = map[string]float64{
	"A": 0.1, "C": 5, "D": 0.001, "E": 1, "B1": 0.1, "B2": 0.1, "B6": 0.1, "B12": 0.001, "Folate": 0.05,
}

var mineralDefaults = map[string]float64{
	"Calcium": 50, "Iron": 2, "Magnesium": 25, "Potassium": 200, "Zinc": 1,
}

// French keys the completion service tends to answer with
var mineralAliases = map[string][]string{
	"Iron":      {"Fer"},
	"Magnesium": {"Magnésium"},
}

// ValidationError reports a generated recipe missing a required field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid recipe %s: %s", e.Field, e.Message)
}

// CoerceRecipe validates a parsed completion as a recipe. Missing or invalid
// times are defaulted; a missing name, ingredient list or instructions rejects
// the whole object.
func CoerceRecipe(obj map[string]interface{}) (*types.GeneratedRecipe, error) {
	name, ok := nonBlankString(obj["name"])
	if !ok {
		return nil, &ValidationError{Field: "name", Message: "must be a non-empty string"}
	}

	rawIngredients, ok := obj["ingredients"].([]interface{})
	if !ok || len(rawIngredients) == 0 {
		return nil, &ValidationError{Field: "ingredients", Message: "must be a non-empty array"}
	}
	ingredients := make([]string, 0, len(rawIngredients))
	for _, item := range rawIngredients {
		s, isString := item.(string)
		if !isString {
			return nil, &ValidationError{Field: "ingredients", Message: "must contain only strings"}
		}
		if s = strings.TrimSpace(s); s != "" {
			ingredients = append(ingredients, s)
		}
	}
	if len(ingredients) == 0 {
		return nil, &ValidationError{Field: "ingredients", Message: "must be a non-empty array"}
	}

	instructions, ok := nonBlankString(obj["instructions"])
	if !ok {
		return nil, &ValidationError{Field: "instructions", Message: "must be a non-empty string"}
	}

	return &types.GeneratedRecipe{
		Name:            name,
		Ingredients:     ingredients,
		Instructions:    instructions,
		PreparationTime: coerceMinutes(obj["preparationTime"], DefaultPreparationTime),
		CookingTime:     coerceMinutes(obj["cookingTime"], DefaultCookingTime),
		Source:          types.SourceModel,
	}, nil
}

// CoerceNutrition never fails: every field falls back to its default when
// missing, unparseable or negative.
func CoerceNutrition(obj map[string]interface{}) *types.NutritionAnalysis {
	return &types.NutritionAnalysis{
		CaloriesPerServing: coerceNumber(obj["caloriesPerServing"], defaultCalories),
		Proteins:           coerceNumber(obj["proteins"], defaultProteins),
		Carbohydrates:      coerceNumber(obj["carbohydrates"], defaultCarbohydrates),
		Fats:               coerceNumber(obj["fats"], defaultFats),
		Fiber:              coerceNumber(obj["fiber"], defaultFiber),
		Vitamins:           coerceKeySet(obj["vitamins"], VitaminKeys, vitaminDefaults, nil),
		Minerals:           coerceKeySet(obj["minerals"], MineralKeys, mineralDefaults, mineralAliases),
		Source:             types.SourceModel,
	}
}

func coerceKeySet(v interface{}, keys []string, defaults map[string]float64, aliases map[string][]string) map[string]float64 {
	in, _ := v.(map[string]interface{})
	out := make(map[string]float64, len(keys))
	for _, key := range keys {
		value, found := in[key]
		if !found {
			for _, alias := range aliases[key] {
				if value, found = in[alias]; found {
					break
				}
			}
		}
		out[key] = coerceNumber(value, defaults[key])
	}
	return out
}

func nonBlankString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// coerceMinutes accepts only JSON numbers; fractional minutes are truncated
func coerceMinutes(v interface{}, def int) int {
	f, ok := v.(float64)
	if !ok || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(f)
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// coerceNumber reads numbers and numeric strings ("12.5g" reads as 12.5),
// rounding to one decimal.
func coerceNumber(v interface{}, def float64) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(n))
		if m == "" {
			return def
		}
		parsed, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}

	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return round1(f)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
