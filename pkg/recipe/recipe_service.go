package recipe

import (
	"context"
	"slices"

	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/singleflight"
)

type (
	RecipeService interface {
		// FetchRecommendations calls the recipe API once for the pantry and
		// stores the recipes not seen before. On an API failure nothing is
		// stored and the error wraps domain.ErrExternalService.
		FetchRecommendations(ctx context.Context, req domain.RecipeRecommendationRequest) (domain.RecipeRecommendationResponse, error)
		// LoadCached returns the persisted collection without calling the API.
		LoadCached(ctx context.Context) (domain.RecipeListResponse, error)
	}

	// ServiceConfig tunes a RecipeService. The zero value makes one API call
	// per FetchRecommendations invocation.
	ServiceConfig struct {
		// CollapseInflight lets concurrent calls with the same normalized
		// query share one API call and one sync.
		CollapseInflight bool
	}

	recipeService struct {
		recipeClient       RecipeClient
		recipeSynchronizer RecipeSynchronizer
		collapseInflight   bool
		inflight           singleflight.Group
	}
)

func NewRecipeService(recipeClient RecipeClient, recipeSynchronizer RecipeSynchronizer, cfg ServiceConfig) RecipeService {
	return &recipeService{
		recipeClient:       recipeClient,
		recipeSynchronizer: recipeSynchronizer,
		collapseInflight:   cfg.CollapseInflight,
	}
}

func (s *recipeService) FetchRecommendations(ctx context.Context, req domain.RecipeRecommendationRequest) (domain.RecipeRecommendationResponse, error) {
	query := BuildIngredientsQuery(req.Pantry)

	var (
		res domain.RecipeRecommendationResponse
		err error
	)
	if s.collapseInflight {
		res, err = s.fetchShared(ctx, query, req.Pantry)
	} else {
		res, err = s.fetchAndSync(ctx, req.Pantry)
	}
	if err != nil {
		log.Errorw("recipe fetch failed", "ingredients", query, "error", err)
		return domain.RecipeRecommendationResponse{Recipes: []domain.Recipe{}}, err
	}
	return res, nil
}

// fetchAndSync runs detached from the caller's cancellation so that writes
// already started are not abandoned halfway through a batch.
func (s *recipeService) fetchAndSync(ctx context.Context, pantry []domain.PantryItem) (domain.RecipeRecommendationResponse, error) {
	workCtx := context.WithoutCancel(ctx)

	fetched, err := s.recipeClient.FindByIngredients(workCtx, pantry)
	if err != nil {
		return domain.RecipeRecommendationResponse{}, err
	}

	recipes, report := s.recipeSynchronizer.SyncAndReturn(workCtx, fetched)
	return domain.RecipeRecommendationResponse{
		Recipes:      recipes,
		TotalRecipes: len(recipes),
		Sync:         report,
	}, nil
}

// fetchShared joins an identical in-flight fetch if there is one. A caller
// whose ctx ends stops waiting; the shared work keeps going for the others.
func (s *recipeService) fetchShared(ctx context.Context, query string, pantry []domain.PantryItem) (domain.RecipeRecommendationResponse, error) {
	ch := s.inflight.DoChan(query, func() (any, error) {
		return s.fetchAndSync(ctx, pantry)
	})

	select {
	case <-ctx.Done():
		return domain.RecipeRecommendationResponse{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return domain.RecipeRecommendationResponse{}, r.Err
		}
		res := r.Val.(domain.RecipeRecommendationResponse)
		if r.Shared {
			log.Debugw("recipe fetch shared with concurrent caller", "ingredients", query, "run_id", res.Sync.RunID)
			res = cloneResponse(res)
		}
		return res, nil
	}
}

// cloneResponse gives each sharing caller its own slices.
func cloneResponse(res domain.RecipeRecommendationResponse) domain.RecipeRecommendationResponse {
	recipes := make([]domain.Recipe, len(res.Recipes))
	for i, r := range res.Recipes {
		recipes[i] = cloneRecipe(r)
	}
	res.Recipes = recipes
	res.Sync.Outcomes = slices.Clone(res.Sync.Outcomes)
	return res
}

func (s *recipeService) LoadCached(ctx context.Context) (domain.RecipeListResponse, error) {
	recipes, err := s.recipeSynchronizer.LoadPersisted(ctx)
	if err != nil {
		log.Errorw("loading stored recipes failed", "error", err)
		return domain.RecipeListResponse{Recipes: []domain.Recipe{}}, err
	}

	return domain.RecipeListResponse{
		Recipes: recipes,
		Total:   len(recipes),
	}, nil
}
