package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/gdg-garage/mission-registration/internal/models"
)

// Connect opens the sqlite database of the mission API and migrates it.
func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database.Connect: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.MissionEvent{}, &models.Participant{}, &models.ParticipantDay{}, &models.APIKey{})
	if err != nil {
		return fmt.Errorf("database.Migrate: %w", err)
	}
	return nil
}

// SeedMissions inserts missions that are not stored yet and leaves existing
// rows untouched.
func SeedMissions(db *gorm.DB, missions []models.MissionEvent) error {
	if len(missions) == 0 {
		return nil
	}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&missions).Error
	if err != nil {
		return fmt.Errorf("database.SeedMissions: %w", err)
	}
	return nil
}

// SeedAPIKeys makes sure every key exists.
func SeedAPIKeys(db *gorm.DB, keys []string) error {
	for _, k := range keys {
		if k == "" {
			continue
		}
		key := models.APIKey{Key: k}
		if err := db.Where(models.APIKey{Key: k}).Attrs(models.APIKey{Name: "config"}).FirstOrCreate(&key).Error; err != nil {
			return fmt.Errorf("database.SeedAPIKeys: %w", err)
		}
	}
	return nil
}
