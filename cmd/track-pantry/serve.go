package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wickypolineni/track-pantry/cmd/config"
	"github.com/Wickypolineni/track-pantry/internal/utils"
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recipe HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, closeStore, err := config.NewRecipeStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		app, accessLog, err := config.NewApp(store)
		if err != nil {
			return err
		}
		defer accessLog.Close()

		errCh := make(chan error, 1)
		go func() {
			errCh <- app.Listen(":" + utils.GetConfig("APP_PORT"))
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		log.Info("server gracefully stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
