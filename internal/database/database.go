package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/platemate-ai/backend/config"
)

// New opens the primary recipe store
func New(cfg *config.Config) (*gorm.DB, error) {
	return open(cfg, cfg.DBName)
}

// NewImageStore opens the image catalog. The catalog is addressed as its own
// store even when it shares a server with the recipe corpus, so read paths
// can treat it as independently unavailable.
func NewImageStore(cfg *config.Config) (*gorm.DB, error) {
	return open(cfg, cfg.ImageDBName)
}

func open(cfg *config.Config, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, dbName, cfg.DBSSLMode,
	)

	// Log connection target (without password)
	log.Printf("Connecting to database %s at %s:%s as user %s", dbName, cfg.DBHost, cfg.DBPort, cfg.DBUser)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error accessing connection pool: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Printf("Successfully connected to database %s", dbName)
	return db, nil
}
