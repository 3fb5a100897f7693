package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recettes/backend/internal/model"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// Sort orders a listing by a column
type Sort struct {
	Field string
	Desc  bool
}

// Gateway is the record store holding recipes and their nutrition analyses
type Gateway interface {
	ListRecipes(ctx context.Context, filter Expr, sort []Sort) ([]model.RecipeRecord, error)
	GetRecipe(ctx context.Context, id string) (*model.RecipeRecord, error)
	CreateRecipe(ctx context.Context, rec *model.RecipeRecord) error
	UpdateRecipe(ctx context.Context, id string, fields map[string]interface{}) (*model.RecipeRecord, error)
	DeleteRecipe(ctx context.Context, id string) error

	ListNutrition(ctx context.Context, filter Expr) ([]model.NutritionRecord, error)
	CreateNutrition(ctx context.Context, rec *model.NutritionRecord) error
	DeleteNutrition(ctx context.Context, id string) error
}

// GormGateway implements Gateway over gorm
type GormGateway struct {
	db *gorm.DB
}

// NewGormGateway creates a new GormGateway
func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

var sortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

func (g *GormGateway) filtered(ctx context.Context, filter Expr) (*gorm.DB, error) {
	query := g.db.WithContext(ctx)
	clause, args, err := ToSQL(filter)
	if err != nil {
		return nil, err
	}
	if clause != "" {
		query = query.Where(clause, args...)
	}
	return query, nil
}

// ListRecipes returns the recipes matching filter in the given order
func (g *GormGateway) ListRecipes(ctx context.Context, filter Expr, sort []Sort) ([]model.RecipeRecord, error) {
	query, err := g.filtered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe filter: %w", err)
	}
	for _, s := range sort {
		if !sortColumns[s.Field] {
			return nil, fmt.Errorf("invalid sort field %q", s.Field)
		}
		order := s.Field
		if s.Desc {
			order += " DESC"
		}
		query = query.Order(order)
	}

	var records []model.RecipeRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetRecipe returns the recipe with the given ID
func (g *GormGateway) GetRecipe(ctx context.Context, id string) (*model.RecipeRecord, error) {
	var rec model.RecipeRecord
	if err := g.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// CreateRecipe inserts rec, filling its ID and timestamps
func (g *GormGateway) CreateRecipe(ctx context.Context, rec *model.RecipeRecord) error {
	return g.db.WithContext(ctx).Create(rec).Error
}

// UpdateRecipe applies a partial update keyed by column name
func (g *GormGateway) UpdateRecipe(ctx context.Context, id string, fields map[string]interface{}) (*model.RecipeRecord, error) {
	rec, err := g.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := g.db.WithContext(ctx).Model(rec).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return g.GetRecipe(ctx, id)
}

// DeleteRecipe removes the recipe with the given ID
func (g *GormGateway) DeleteRecipe(ctx context.Context, id string) error {
	result := g.db.WithContext(ctx).Delete(&model.RecipeRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListNutrition returns the nutrition analyses matching filter, oldest first
func (g *GormGateway) ListNutrition(ctx context.Context, filter Expr) ([]model.NutritionRecord, error) {
	query, err := g.filtered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("invalid nutrition filter: %w", err)
	}
	var records []model.NutritionRecord
	if err := query.Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CreateNutrition inserts rec, filling its ID and timestamps
func (g *GormGateway) CreateNutrition(ctx context.Context, rec *model.NutritionRecord) error {
	return g.db.WithContext(ctx).Create(rec).Error
}

// DeleteNutrition removes the nutrition analysis with the given ID
func (g *GormGateway) DeleteNutrition(ctx context.Context, id string) error {
	result := g.db.WithContext(ctx).Delete(&model.NutritionRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
