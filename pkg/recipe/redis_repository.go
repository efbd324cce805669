package recipe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/redis/go-redis/v9"
)

// redisRecipeRepository stores the collection as one hash: field = recipe
// id, value = recipe JSON. HSETNX gives the id uniqueness.
type redisRecipeRepository struct {
	client     redis.Cmdable
	collection string
}

func NewRedisRecipeRepository(client redis.Cmdable, collection string) RecipeRepository {
	return &redisRecipeRepository{client: client, collection: collection}
}

func (r *redisRecipeRepository) ListIDs(ctx context.Context) (map[string]struct{}, error) {
	keys, err := r.client.HKeys(ctx, r.collection).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreRead, err)
	}

	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set, nil
}

func (r *redisRecipeRepository) ListAll(ctx context.Context) ([]domain.Recipe, error) {
	values, err := r.client.HVals(ctx, r.collection).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreRead, err)
	}

	recipes := make([]domain.Recipe, 0, len(values))
	for _, v := range values {
		var recipe domain.Recipe
		if err := json.Unmarshal([]byte(v), &recipe); err != nil {
			return nil, fmt.Errorf("%w: decode recipe: %w", domain.ErrStoreRead, err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (r *redisRecipeRepository) Insert(ctx context.Context, recipe domain.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("%w: encode recipe %d: %w", domain.ErrStoreWrite, recipe.ID, err)
	}

	added, err := r.client.HSetNX(ctx, r.collection, recipe.Key(), data).Result()
	if err != nil {
		return fmt.Errorf("%w: recipe %d: %w", domain.ErrStoreWrite, recipe.ID, err)
	}
	if !added {
		return domain.ErrRecipeExists
	}
	return nil
}
