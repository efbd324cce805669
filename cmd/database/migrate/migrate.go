package migration

import (
	"fmt"

	"github.com/Wickypolineni/track-pantry/entities"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Migrate creates the recipe collection table. The primary key on id is
// what keeps concurrent syncs from storing a recipe twice.
func Migrate(db *gorm.DB, collection string) error {
	if err := db.Table(collection).AutoMigrate(&entities.Recipe{}); err != nil {
		return fmt.Errorf("error migrating %s table: %w", collection, err)
	}

	log.Infow("database migration complete", "table", collection)
	return nil
}
