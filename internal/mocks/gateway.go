package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-recettes/backend/internal/database"
	"github.com/pageza/alchemorsel-recettes/backend/internal/model"
)

// MockGateway is a mock implementation of the record store
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListRecipes(ctx context.Context, filter database.Expr, sort []database.Sort) ([]model.RecipeRecord, error) {
	args := m.Called(ctx, filter, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecipeRecord), args.Error(1)
}

func (m *MockGateway) GetRecipe(ctx context.Context, id string) (*model.RecipeRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecipeRecord), args.Error(1)
}

// CreateRecipe assigns an ID like the real store unless the expectation returns an error
func (m *MockGateway) CreateRecipe(ctx context.Context, rec *model.RecipeRecord) error {
	args := m.Called(ctx, rec)
	if args.Error(0) == nil && rec.ID == "" {
		rec.ID = model.NewRecordID()
	}
	return args.Error(0)
}

func (m *MockGateway) UpdateRecipe(ctx context.Context, id string, fields map[string]interface{}) (*model.RecipeRecord, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecipeRecord), args.Error(1)
}

func (m *MockGateway) DeleteRecipe(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGateway) ListNutrition(ctx context.Context, filter database.Expr) ([]model.NutritionRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NutritionRecord), args.Error(1)
}

// CreateNutrition assigns an ID like the real store unless the expectation returns an error
func (m *MockGateway) CreateNutrition(ctx context.Context, rec *model.NutritionRecord) error {
	args := m.Called(ctx, rec)
	if args.Error(0) == nil && rec.ID == "" {
		rec.ID = model.NewRecordID()
	}
	return args.Error(0)
}

func (m *MockGateway) DeleteNutrition(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ database.Gateway = (*MockGateway)(nil)
