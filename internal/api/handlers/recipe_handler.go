package handlers

import (
	"errors"

	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/Wickypolineni/track-pantry/internal/api/presenters"
	"github.com/Wickypolineni/track-pantry/pkg/recipe"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		FetchRecommendations(c *fiber.Ctx) error
		GetCachedRecipes(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) FetchRecommendations(c *fiber.Ctx) error {
	req := new(domain.RecipeRecommendationRequest)

	// an empty body is an empty pantry
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidatePantry, errors.Join(domain.ErrInvalidPantry, err))
	}

	res, err := h.recipeService.FetchRecommendations(c.UserContext(), *req)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrExternalService) {
			status = fiber.StatusBadGateway
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedFetchRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessFetchRecipes)
}

func (h *recipeHandler) GetCachedRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.LoadCached(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}
