package main

import (
	"encoding/json"
	"io"

	"github.com/Wickypolineni/track-pantry/cmd/config"
	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [ingredient...]",
	Short: "Fetch recommendations for the given ingredients and store new recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := config.NewRecipeStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		req := domain.RecipeRecommendationRequest{Pantry: make([]domain.PantryItem, 0, len(args))}
		for _, name := range args {
			req.Pantry = append(req.Pantry, domain.PantryItem{Name: name})
		}

		res, err := config.NewRecipeService(store).FetchRecommendations(cmd.Context(), req)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), res)
	},
}

var cachedCmd = &cobra.Command{
	Use:   "cached",
	Short: "Print the stored recipes without calling the recipe API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := config.NewRecipeStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := config.NewRecipeService(store).LoadCached(cmd.Context())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), res)
	},
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(cachedCmd)
}
