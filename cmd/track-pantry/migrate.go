package main

import (
	"github.com/Wickypolineni/track-pantry/cmd/config"
	migration "github.com/Wickypolineni/track-pantry/cmd/database/migrate"
	"github.com/Wickypolineni/track-pantry/internal/utils"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the postgres recipe table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.ConnectDB()
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		return migration.Migrate(db, utils.GetConfig("RECIPE_COLLECTION"))
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
