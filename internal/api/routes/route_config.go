package routes

import (
	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/Wickypolineni/track-pantry/internal/api/handlers"
	"github.com/Wickypolineni/track-pantry/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": domain.MessageSuccessPing})
	})
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	recipes.Get("", c.RecipeHandler.GetCachedRecipes)
	recipes.Post("/recommendations", c.RecipeHandler.FetchRecommendations)
}
