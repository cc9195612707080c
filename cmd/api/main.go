package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/platemate-ai/backend/config"
	"github.com/platemate-ai/backend/internal/api"
	"github.com/platemate-ai/backend/internal/database"
	"github.com/platemate-ai/backend/internal/middleware"
	"github.com/platemate-ai/backend/internal/router"
	"github.com/platemate-ai/backend/internal/server"
	"github.com/platemate-ai/backend/internal/service"
)

func main() {
	// Best-effort .env load for local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Stores
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to recipe store: %v", err)
	}
	imageDB, err := database.NewImageStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to image store: %v", err)
	}

	// Rate limiting is optional: search still works when Redis is away
	var searchLimiter gin.HandlerFunc
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis for rate limiting: %v", err)
	} else {
		searchLimiter = middleware.NewSearchRateLimiter(redisClient).RateLimitMiddleware()
	}

	// Gemini clients
	embeddingService, err := service.NewEmbeddingService()
	if err != nil {
		log.Fatalf("Failed to create embedding service: %v", err)
	}
	llmService, err := service.NewLLMService()
	if err != nil {
		log.Fatalf("Failed to create LLM service: %v", err)
	}

	// S3 is optional; without it image ingestion reports an error while the
	// read paths keep serving whatever the catalog already holds
	ctx := context.Background()
	s3Config, err := config.NewS3Config(ctx)
	if err != nil {
		log.Printf("Warning: S3 is not configured, image uploads disabled: %v", err)
		s3Config = nil
	} else if err := s3Config.SetupBucketPolicy(ctx); err != nil {
		log.Printf("Warning: Failed to apply bucket policy: %v", err)
	}

	// Services
	recipeService := service.NewRecipeService(db)
	imageService := service.NewImageService(imageDB, s3Config)
	ragService := service.NewRAGService(embeddingService, llmService, recipeService, imageService)
	detailService := service.NewDetailService(recipeService, llmService, imageService)
	summaryService := service.NewSummaryService(recipeService, imageService)
	tokenService := service.NewTokenService(cfg.JWTSecret)

	// Handlers
	searchHandler := api.NewSearchHandler(ragService)
	recipeHandler := api.NewRecipeHandler(detailService)
	summaryHandler := api.NewSummaryHandler(summaryService)
	adminHandler := api.NewAdminHandler(embeddingService, recipeService, imageService)
	healthHandler := api.NewHealthHandler(db)

	engine := router.SetupRouter(
		searchHandler,
		recipeHandler,
		summaryHandler,
		adminHandler,
		healthHandler,
		searchLimiter,
		tokenService,
	)

	srv := server.New(cfg, engine)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
