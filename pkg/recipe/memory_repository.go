package recipe

import (
	"context"
	"sync"

	"github.com/Wickypolineni/track-pantry/domain"
)

type memoryRecipeRepository struct {
	mu      sync.RWMutex
	records map[string]domain.Recipe
	order   []string
}

// NewMemoryRecipeRepository keeps the collection in process memory, in
// insertion order. Seed records are inserted as if already persisted.
func NewMemoryRecipeRepository(seed ...domain.Recipe) RecipeRepository {
	r := &memoryRecipeRepository{records: make(map[string]domain.Recipe)}
	for _, rec := range seed {
		_ = r.Insert(context.Background(), rec)
	}
	return r
}

func (r *memoryRecipeRepository) ListIDs(ctx context.Context) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := make(map[string]struct{}, len(r.order))
	for _, key := range r.order {
		set[key] = struct{}{}
	}
	return set, nil
}

func (r *memoryRecipeRepository) ListAll(ctx context.Context) ([]domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipes := make([]domain.Recipe, 0, len(r.order))
	for _, key := range r.order {
		recipes = append(recipes, cloneRecipe(r.records[key]))
	}
	return recipes, nil
}

func (r *memoryRecipeRepository) Insert(ctx context.Context, recipe domain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recipe.Key()
	if _, ok := r.records[key]; ok {
		return domain.ErrRecipeExists
	}
	r.records[key] = cloneRecipe(recipe)
	r.order = append(r.order, key)
	return nil
}
