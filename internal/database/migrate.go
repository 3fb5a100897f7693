package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recettes/backend/internal/model"
)

// Migrate creates or updates the recipes and nutrition_analyses tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.RecipeRecord{}, &model.NutritionRecord{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", db.Dialector.Name(), err)
	}
	return nil
}
