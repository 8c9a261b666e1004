package main

import (
	"log"

	"review-system-api/config"
	"review-system-api/internal/database"
	"review-system-api/internal/logger"
	"review-system-api/internal/router"
	"review-system-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := logger.Setup(cfg.LogDir); err != nil {
		log.Fatal("Failed to set up logger:", err)
	}

	if err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	store, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to initialize file store:", err)
	}

	e := router.New(cfg, store)

	log.Printf("Server starting on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
