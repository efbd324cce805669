package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Wickypolineni/track-pantry/internal/api/handlers"
	"github.com/Wickypolineni/track-pantry/internal/api/routes"
	"github.com/Wickypolineni/track-pantry/internal/middleware"
	"github.com/Wickypolineni/track-pantry/internal/utils"
	"github.com/Wickypolineni/track-pantry/pkg/recipe"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewRecipeService wires the recipe API client and the synchronizer around
// the given store.
func NewRecipeService(recipeRepository recipe.RecipeRepository) recipe.RecipeService {
	recipeClient := recipe.NewRecipeClient(recipe.ClientConfig{
		BaseURL:    utils.GetConfig("SPOONACULAR_BASE_URL"),
		APIKey:     utils.GetConfig("SPOONACULAR_API_KEY"),
		MaxResults: utils.GetConfigInt("SPOONACULAR_MAX_RESULTS", recipe.DefaultMaxResults),
		Ranking:    utils.GetConfigInt("SPOONACULAR_RANKING", 0),
		Timeout:    utils.GetConfigDuration("SPOONACULAR_TIMEOUT", 30*time.Second),
	})
	recipeSynchronizer := recipe.NewRecipeSynchronizer(recipeRepository)
	return recipe.NewRecipeService(recipeClient, recipeSynchronizer, recipe.ServiceConfig{
		CollapseInflight: utils.GetConfigBool("COLLAPSE_INFLIGHT_FETCHES", false),
	})
}

// NewApp builds the HTTP app. The returned closer flushes the access log.
func NewApp(recipeRepository recipe.RecipeRepository) (*fiber.App, io.Closer, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	logDir := utils.GetConfig("LOG_DIR")
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		filepath.Join(logDir, "app.log"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 10),
		Expiration: 1 * time.Second,
	}))

	// Service
	recipeService := NewRecipeService(recipeRepository)

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		RecipeHandler: recipeHandler,
		Middleware:    middlewares,
	}
	routesConfig.Setup()
	return app, file, nil
}
