package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-recettes/backend/internal/service"
	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	logger  *zap.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		logger:  logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("", h.CreateRecipe)
		recipes.POST("/:id/generate-nutrition", h.GenerateNutrition)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

// CreateRecipe generates, persists and returns a recipe with its nutrition analysis
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), req.GenerationRequest())
	if err != nil {
		h.fail(c, err, "Failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) GenerateNutrition(c *gin.Context) {
	nutrition, err := h.recipes.GenerateNutritionForRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to generate nutrition")
		return
	}

	c.JSON(http.StatusCreated, nutrition)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var search types.RecipeSearch
	if err := c.ShouldBindQuery(&search); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), search)
	if err != nil {
		h.fail(c, err, "Failed to fetch recipes")
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully", "id": id})
}

// fail maps a service error onto a response. Not-found is reported as 404,
// everything else as a generic 500.
func (h *RecipeHandler) fail(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe with ID " + c.Param("id") + " not found"})
		return
	}

	h.logger.Error(message, zap.String("recipe_id", c.Param("id")), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
