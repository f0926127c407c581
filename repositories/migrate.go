package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&languageRecord{},
		&userRecord{},
		&tagRecord{},
		&articleRecord{},
		&translationRecord{},
		&tagTranslationRecord{},
		&articleTagRecord{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
