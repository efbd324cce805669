package recipe

import (
	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/Wickypolineni/track-pantry/entities"
)

func toEntity(r domain.Recipe) *entities.Recipe {
	return &entities.Recipe{
		ID:                r.ID,
		Title:             r.Title,
		Image:             r.Image,
		UsedIngredients:   toEntityIngredients(r.UsedIngredients),
		MissedIngredients: toEntityIngredients(r.MissedIngredients),
		Likes:             r.Likes,
	}
}

func toDomain(r *entities.Recipe) domain.Recipe {
	return domain.Recipe{
		ID:                r.ID,
		Title:             r.Title,
		Image:             r.Image,
		UsedIngredients:   toDomainIngredients(r.UsedIngredients),
		MissedIngredients: toDomainIngredients(r.MissedIngredients),
		Likes:             r.Likes,
	}
}

func toEntityIngredients(in []domain.RecipeIngredient) []entities.RecipeIngredient {
	out := make([]entities.RecipeIngredient, 0, len(in))
	for _, i := range in {
		out = append(out, entities.RecipeIngredient{Name: i.Name, Original: i.Original, Image: i.Image})
	}
	return out
}

func toDomainIngredients(in []entities.RecipeIngredient) []domain.RecipeIngredient {
	out := make([]domain.RecipeIngredient, 0, len(in))
	for _, i := range in {
		out = append(out, domain.RecipeIngredient{Name: i.Name, Original: i.Original, Image: i.Image})
	}
	return out
}

// cloneRecipe copies the ingredient slices so stored records never alias
// the caller's data.
func cloneRecipe(r domain.Recipe) domain.Recipe {
	r.UsedIngredients = cloneIngredients(r.UsedIngredients)
	r.MissedIngredients = cloneIngredients(r.MissedIngredients)
	return r
}

func cloneIngredients(in []domain.RecipeIngredient) []domain.RecipeIngredient {
	if in == nil {
		return nil
	}
	return append(make([]domain.RecipeIngredient, 0, len(in)), in...)
}
