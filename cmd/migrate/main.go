package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/platemate-ai/backend/config"
	"github.com/platemate-ai/backend/internal/database"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to recipe store: %v", err)
	}
	if err := database.MigrateRecipeStore(db); err != nil {
		log.Fatalf("Failed to migrate recipe store: %v", err)
	}
	log.Printf("Recipe store schema is up to date")

	imageDB, err := database.NewImageStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to image store: %v", err)
	}
	if err := database.MigrateImageStore(imageDB); err != nil {
		log.Fatalf("Failed to migrate image store: %v", err)
	}
	log.Printf("Image store schema is up to date")
}
