package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

const degradedTTL = 24 * time.Hour

// DegradedStore parks nutrition analyses that could not be persisted so a
// later fetch of the recipe can still show them.
type DegradedStore interface {
	Save(ctx context.Context, nutrition *types.NutritionData) error
	Get(ctx context.Context, recipeID string) (*types.NutritionData, error)
	Delete(ctx context.Context, recipeID string) error
}

// RedisDegradedStore keeps degraded analyses in Redis for 24 hours
type RedisDegradedStore struct {
	redis *redis.Client
}

// NewRedisDegradedStore creates a new RedisDegradedStore
func NewRedisDegradedStore(client *redis.Client) *RedisDegradedStore {
	return &RedisDegradedStore{redis: client}
}

func degradedKey(recipeID string) string {
	return fmt.Sprintf("recipe:nutrition:degraded:%s", recipeID)
}

// Save stores the analysis under its recipe ID
func (s *RedisDegradedStore) Save(ctx context.Context, nutrition *types.NutritionData) error {
	data, err := json.Marshal(nutrition)
	if err != nil {
		return fmt.Errorf("failed to marshal nutrition: %w", err)
	}

	if err := s.redis.Set(ctx, degradedKey(nutrition.RecipeID), data, degradedTTL).Err(); err != nil {
		return fmt.Errorf("failed to save nutrition to Redis: %w", err)
	}
	return nil
}

// Get returns the parked analysis of a recipe, or nil when there is none
func (s *RedisDegradedStore) Get(ctx context.Context, recipeID string) (*types.NutritionData, error) {
	data, err := s.redis.Get(ctx, degradedKey(recipeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nutrition from Redis: %w", err)
	}

	var nutrition types.NutritionData
	if err := json.Unmarshal(data, &nutrition); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nutrition: %w", err)
	}
	return &nutrition, nil
}

// Delete removes the parked analysis of a recipe
func (s *RedisDegradedStore) Delete(ctx context.Context, recipeID string) error {
	if err := s.redis.Del(ctx, degradedKey(recipeID)).Err(); err != nil {
		return fmt.Errorf("failed to delete nutrition from Redis: %w", err)
	}
	return nil
}
