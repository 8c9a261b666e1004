package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"review-system-api/internal/models"
)

var DB *gorm.DB

func Connect(databaseURL string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connected successfully")
	return nil
}

func Migrate() error {
	return DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Team{},
		&models.Assignment{},
		&models.Subtask{},
		&models.Submission{},
		&models.Review{},
		&models.ReviewComment{},
		&models.Attachment{},
	)
}
