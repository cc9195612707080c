package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/platemate-ai/backend/config"
	"github.com/platemate-ai/backend/internal/service"
)

// Mints a service token for calling the ingestion routes.
func main() {
	serviceName := flag.String("service", "ingest-cli", "name of the calling service")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not configured")
	}

	token, err := service.NewTokenService(cfg.JWTSecret).IssueToken(*serviceName)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}
