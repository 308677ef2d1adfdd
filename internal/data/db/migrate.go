package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/tripcraft-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

// EnsureLocationIndexes adds the lookup indexes gorm tags cannot express.
// Postgres only.
func EnsureLocationIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_location_city_lower ON location (LOWER(city));`).Error; err != nil {
		return fmt.Errorf("create idx_location_city_lower: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_trip_owner_updated
		ON trip (owner_user_id, updated_at DESC)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_trip_owner_updated: %w", err)
	}
	return nil
}
