package recipe

import (
	"context"
	"fmt"

	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/Wickypolineni/track-pantry/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// RecipeRepository is the persisted recipe collection. Implementations
	// must reject a second record with an existing id with domain.ErrRecipeExists.
	RecipeRepository interface {
		ListIDs(ctx context.Context) (map[string]struct{}, error)
		ListAll(ctx context.Context) ([]domain.Recipe, error)
		Insert(ctx context.Context, recipe domain.Recipe) error
	}

	recipeRepository struct {
		db         *gorm.DB
		collection string
	}
)

func NewRecipeRepository(db *gorm.DB, collection string) RecipeRepository {
	return &recipeRepository{db: db, collection: collection}
}

func (r *recipeRepository) ListIDs(ctx context.Context) (map[string]struct{}, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Table(r.collection).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreRead, err)
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[domain.Recipe{ID: id}.Key()] = struct{}{}
	}
	return set, nil
}

func (r *recipeRepository) ListAll(ctx context.Context) ([]domain.Recipe, error) {
	var rows []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Table(r.collection).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreRead, err)
	}

	recipes := make([]domain.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, toDomain(row))
	}
	return recipes, nil
}

func (r *recipeRepository) Insert(ctx context.Context, recipe domain.Recipe) error {
	res := r.insertQuery(r.db.WithContext(ctx), toEntity(recipe))
	if res.Error != nil {
		return fmt.Errorf("%w: recipe %d: %w", domain.ErrStoreWrite, recipe.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecipeExists
	}
	return nil
}

// insertQuery leaves an existing row untouched, so a conflicting insert
// affects zero rows.
func (r *recipeRepository) insertQuery(tx *gorm.DB, row *entities.Recipe) *gorm.DB {
	return tx.Table(r.collection).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
}
