package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-recettes/backend/internal/database"
	"github.com/pageza/alchemorsel-recettes/backend/internal/model"
	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

// ErrRecipeNotFound is returned when the addressed recipe does not exist
var ErrRecipeNotFound = errors.New("recipe not found")

// Store messages that mean the record is absent or not visible
var notFoundPatterns = []string{
	"Could not find what you are looking for",
	"not authorized to perform this operation",
}

// RecipeService creates, reads, updates and deletes generated recipes
type RecipeService struct {
	gateway    database.Gateway
	generator  RecipeGenerator
	vocabulary model.Vocabulary
	degraded   DegradedStore
	logger     *zap.Logger
	metrics    *Metrics
}

// NewRecipeService creates a new RecipeService instance. degraded may be nil.
func NewRecipeService(
	gateway database.Gateway,
	generator RecipeGenerator,
	vocabulary model.Vocabulary,
	degraded DegradedStore,
	logger *zap.Logger,
	metrics *Metrics,
) *RecipeService {
	return &RecipeService{
		gateway:    gateway,
		generator:  generator,
		vocabulary: vocabulary,
		degraded:   degraded,
		logger:     logger,
		metrics:    metrics,
	}
}

// CreateRecipe generates a recipe, persists it, then generates and persists
// its nutrition analysis. A nutrition persistence failure does not fail the
// call: the analysis is returned unpersisted with a temporary ID.
func (s *RecipeService) CreateRecipe(ctx context.Context, req types.GenerationRequest) (*types.RecipeWithNutrition, error) {
	// Once accepted, creation runs to completion even if the client goes away.
	ctx = context.WithoutCancel(ctx)

	generated := s.generator.GenerateRecipe(ctx, req)

	rec := &model.RecipeRecord{
		Name:                generated.Name,
		Ingredients:         model.JSONBStringArray(generated.Ingredients),
		Instructions:        generated.Instructions,
		Servings:            req.Servings,
		DietaryRestrictions: model.JSONBStringArray(s.vocabulary.FilterRestrictions(req.DietaryRestrictions)),
		PreparationTime:     generated.PreparationTime,
		CookingTime:         generated.CookingTime,
	}
	if category, ok := s.vocabulary.MapCategory(string(req.Category)); ok {
		rec.RecipeType = &category
	}

	if err := s.gateway.CreateRecipe(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	log := s.logger.With(zap.String("recipe_id", rec.ID))
	log.Info("recipe created", zap.String("source", string(generated.Source)))

	analysis := s.generator.AnalyzeNutrition(ctx, types.NutritionRequest{
		Ingredients: generated.Ingredients,
		Servings:    req.Servings,
	})

	nutrition, err := s.saveNutrition(ctx, rec.ID, analysis)
	if err != nil {
		log.Warn("failed to save nutritional analysis", zap.Error(err))
		s.metrics.NutritionPersistFailed()
		nutrition = s.degradedNutrition(ctx, rec.ID, analysis)
	}

	return &types.RecipeWithNutrition{Recipe: toRecipe(rec), Nutrition: nutrition}, nil
}

// GenerateNutritionForRecipe analyzes the stored ingredients of a recipe and persists the result
func (s *RecipeService) GenerateNutritionForRecipe(ctx context.Context, id string) (*types.NutritionData, error) {
	rec, err := s.gateway.GetRecipe(ctx, id)
	if err != nil {
		return nil, s.wrap("fetch", id, err)
	}

	analysis := s.generator.AnalyzeNutrition(ctx, types.NutritionRequest{
		Ingredients: rec.Ingredients,
		Servings:    rec.Servings,
	})

	nutrition, err := s.saveNutrition(ctx, rec.ID, analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nutrition: %w", err)
	}

	if s.degraded != nil {
		if err := s.degraded.Delete(ctx, rec.ID); err != nil {
			s.logger.Warn("failed to clear degraded nutrition", zap.String("recipe_id", rec.ID), zap.Error(err))
		}
	}
	return nutrition, nil
}

// ListRecipes returns the recipes matching search, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, search types.RecipeSearch) ([]types.Recipe, error) {
	filter := s.recipeFilter(search)
	if filter != nil {
		s.logger.Debug("listing recipes", zap.String("filter", database.Formula(filter)))
	}

	records, err := s.gateway.ListRecipes(ctx, filter, []database.Sort{{Field: "created_at", Desc: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	recipes := make([]types.Recipe, len(records))
	for i := range records {
		recipes[i] = toRecipe(&records[i])
	}
	return recipes, nil
}

func (s *RecipeService) recipeFilter(search types.RecipeSearch) database.Expr {
	var exprs []database.Expr
	if name := strings.TrimSpace(search.Name); name != "" {
		exprs = append(exprs, database.Search("name", name))
	}
	if ingredient := strings.TrimSpace(search.Ingredient); ingredient != "" {
		exprs = append(exprs, database.Search("ingredients", ingredient))
	}
	if recipeType := strings.TrimSpace(search.RecipeType); recipeType != "" {
		if mapped, ok := s.vocabulary.MapCategory(recipeType); ok {
			recipeType = mapped
		}
		exprs = append(exprs, database.Eq("recipe_type", recipeType))
	}
	if restrictions := search.Restrictions(); len(restrictions) > 0 {
		matches := make([]database.Expr, len(restrictions))
		for i, r := range restrictions {
			matches[i] = database.Contains("dietary_restrictions", r)
		}
		exprs = append(exprs, database.Or(matches...))
	}
	return database.And(exprs...)
}

// GetRecipe returns a recipe with its nutrition analysis, if one exists
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*types.RecipeWithNutrition, error) {
	rec, err := s.gateway.GetRecipe(ctx, id)
	if err != nil {
		return nil, s.wrap("fetch", id, err)
	}

	records, err := s.gateway.ListNutrition(ctx, database.Eq("recipe_id", id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}

	result := &types.RecipeWithNutrition{Recipe: toRecipe(rec)}
	if len(records) > 0 {
		result.Nutrition = toNutritionData(&records[0])
	} else if s.degraded != nil {
		parked, err := s.degraded.Get(ctx, id)
		if err != nil {
			s.logger.Warn("failed to read degraded nutrition", zap.String("recipe_id", id), zap.Error(err))
		}
		result.Nutrition = parked
	}
	return result, nil
}

// UpdateRecipe applies a partial update. Nothing is regenerated.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, req types.UpdateRecipeRequest) (*types.Recipe, error) {
	fields := map[string]interface{}{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if len(req.Ingredients) > 0 {
		fields["ingredients"] = model.JSONBStringArray(req.Ingredients)
	}
	if req.Instructions != nil && strings.TrimSpace(*req.Instructions) != "" {
		fields["instructions"] = strings.TrimSpace(*req.Instructions)
	}
	if req.Servings != nil && *req.Servings > 0 {
		fields["servings"] = *req.Servings
	}
	if req.DietaryRestrictions != nil {
		fields["dietary_restrictions"] = model.JSONBStringArray(s.vocabulary.FilterRestrictions(req.DietaryRestrictions))
	}
	if req.RecipeType != nil {
		if category, ok := s.vocabulary.MapCategory(*req.RecipeType); ok {
			fields["recipe_type"] = category
		} else {
			s.logger.Debug("dropping unmapped recipe type", zap.String("recipe_id", id), zap.String("recipe_type", *req.RecipeType))
		}
	}

	rec, err := s.gateway.UpdateRecipe(ctx, id, fields)
	if err != nil {
		return nil, s.wrap("update", id, err)
	}
	recipe := toRecipe(rec)
	return &recipe, nil
}

// DeleteRecipe removes the nutrition analyses of a recipe, then the recipe.
// Nutrition cleanup is best effort.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	log := s.logger.With(zap.String("recipe_id", id))

	records, err := s.gateway.ListNutrition(ctx, database.Eq("recipe_id", id))
	if err != nil {
		log.Warn("failed to list nutrition analyses for deletion", zap.Error(err))
	}
	for _, rec := range records {
		if err := s.gateway.DeleteNutrition(ctx, rec.ID); err != nil {
			log.Warn("failed to delete nutrition analysis", zap.String("nutrition_id", rec.ID), zap.Error(err))
		}
	}
	if s.degraded != nil {
		if err := s.degraded.Delete(ctx, id); err != nil {
			log.Warn("failed to clear degraded nutrition", zap.Error(err))
		}
	}

	if err := s.gateway.DeleteRecipe(ctx, id); err != nil {
		return s.wrap("delete", id, err)
	}
	log.Info("recipe deleted")
	return nil
}

func (s *RecipeService) saveNutrition(ctx context.Context, recipeID string, analysis *types.NutritionAnalysis) (*types.NutritionData, error) {
	rec := &model.NutritionRecord{
		RecipeID:           recipeID,
		CaloriesPerServing: analysis.CaloriesPerServing,
		ProteinsG:          analysis.Proteins,
		CarbohydratesG:     analysis.Carbohydrates,
		FatsG:              analysis.Fats,
		FiberG:             analysis.Fiber,
		Vitamins:           model.JSONFloatMap(analysis.Vitamins),
		Minerals:           model.JSONFloatMap(analysis.Minerals),
	}
	if err := s.gateway.CreateNutrition(ctx, rec); err != nil {
		return nil, err
	}
	nutrition := toNutritionData(rec)
	nutrition.Source = analysis.Source
	return nutrition, nil
}

// degradedNutrition wraps an unpersisted analysis and parks it for later reads
func (s *RecipeService) degradedNutrition(ctx context.Context, recipeID string, analysis *types.NutritionAnalysis) *types.NutritionData {
	nutrition := &types.NutritionData{
		ID:                "temp-" + uuid.NewString(),
		RecipeID:          recipeID,
		NutritionAnalysis: *analysis,
		AnalysisDate:      time.Now().UTC(),
		Degraded:          true,
	}
	if s.degraded != nil {
		if err := s.degraded.Save(ctx, nutrition); err != nil {
			s.logger.Warn("failed to park degraded nutrition", zap.String("recipe_id", recipeID), zap.Error(err))
		}
	}
	return nutrition
}

// wrap maps store absence onto ErrRecipeNotFound and wraps everything else
func (s *RecipeService) wrap(op, id string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("recipe with ID %s: %w", id, ErrRecipeNotFound)
	}
	return fmt.Errorf("failed to %s recipe: %w", op, err)
}

func isNotFound(err error) bool {
	if errors.Is(err, database.ErrNotFound) {
		return true
	}
	msg := err.Error()
	for _, pattern := range notFoundPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func toRecipe(rec *model.RecipeRecord) types.Recipe {
	recipe := types.Recipe{
		ID:                  rec.ID,
		Name:                rec.Name,
		Ingredients:         append([]string{}, rec.Ingredients...),
		Instructions:        rec.Instructions,
		Servings:            rec.Servings,
		DietaryRestrictions: append([]string{}, rec.DietaryRestrictions...),
		PreparationTime:     rec.PreparationTime,
		CookingTime:         rec.CookingTime,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
	if rec.RecipeType != nil {
		recipe.RecipeType = *rec.RecipeType
	}
	return recipe
}

func toNutritionData(rec *model.NutritionRecord) *types.NutritionData {
	return &types.NutritionData{
		ID:       rec.ID,
		RecipeID: rec.RecipeID,
		NutritionAnalysis: types.NutritionAnalysis{
			CaloriesPerServing: rec.CaloriesPerServing,
			Proteins:           rec.ProteinsG,
			Carbohydrates:      rec.CarbohydratesG,
			Fats:               rec.FatsG,
			Fiber:              rec.FiberG,
			Vitamins:           map[string]float64(rec.Vitamins),
			Minerals:           map[string]float64(rec.Minerals),
		},
		AnalysisDate: rec.AnalysisDate,
	}
}
