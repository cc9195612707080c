package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/platemate-ai/backend/internal/model"
)

// MigrateRecipeStore prepares the recipe corpus schema. On Postgres the
// pgvector extension must exist before the embedding column can be created,
// and the HNSW index must use the cosine operator class to match the <=>
// queries the search path issues.
func MigrateRecipeStore(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		log.Printf("Using GORM auto-migration for %s", db.Dialector.Name())
		return db.AutoMigrate(&model.Recipe{})
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}
	if err := db.AutoMigrate(&model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate recipes table: %w", err)
	}
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_recipes_embedding ON recipes USING hnsw (embedding vector_cosine_ops)",
	).Error; err != nil {
		return fmt.Errorf("failed to create embedding index: %w", err)
	}

	return nil
}

// MigrateImageStore prepares the image catalog schema
func MigrateImageStore(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.RecipeImage{}); err != nil {
		return fmt.Errorf("failed to migrate recipe_images table: %w", err)
	}
	return nil
}
