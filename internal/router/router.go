package router

import (
	"github.com/gin-gonic/gin"

	"github.com/platemate-ai/backend/internal/api"
	"github.com/platemate-ai/backend/internal/metrics"
	"github.com/platemate-ai/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	searchHandler *api.SearchHandler,
	recipeHandler *api.RecipeHandler,
	summaryHandler *api.SummaryHandler,
	adminHandler *api.AdminHandler,
	healthHandler *api.HealthHandler,
	searchLimiter gin.HandlerFunc,
	tokenValidator middleware.TokenValidator,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Recipe routes
	recipes := v1.Group("/recipes")
	{
		search := recipes.Group("")
		if searchLimiter != nil {
			search.Use(searchLimiter)
		}
		search.POST("/search", searchHandler.Search)

		recipes.GET("/:id", recipeHandler.GetRecipe)
	}

	v1.GET("/summaries", summaryHandler.GetSummaries)

	// Ingestion routes
	admin := v1.Group("/admin")
	admin.Use(middleware.ServiceAuthMiddleware(tokenValidator))
	{
		admin.POST("/recipes", adminHandler.CreateRecipe)
		admin.POST("/recipes/:id/images", adminHandler.AddImage)
	}

	return router
}
