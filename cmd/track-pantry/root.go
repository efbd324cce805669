package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Wickypolineni/track-pantry/internal/utils"
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "track-pantry",
	Short: "Recipe recommendations for the ingredients in your pantry",
	Long: `track-pantry asks the Spoonacular recipe API for recipes that use the
ingredients you have and keeps every recipe it has seen in a shared store,
so the last results can be shown without calling the API again.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadConfig()
		utils.InitLogger()
		if verbose {
			log.SetLevel(log.LevelDebug)
		}
	},
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
