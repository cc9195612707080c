package service

import (
	"context"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/platemate-ai/backend/internal/model"
	"github.com/platemate-ai/backend/internal/types"
)

// IEmbeddingClient defines the interface for turning free text into
// corpus-space vectors.
type IEmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

// IGenerativeClient defines the interface for single-shot text generation.
type IGenerativeClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// IRecipeService defines the interface for primary-store recipe operations.
type IRecipeService interface {
	SearchByEmbedding(ctx context.Context, embedding pgvector.Vector, limit int) ([]types.RetrievedRecipe, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	GetSummaries(ctx context.Context, ids []string) ([]model.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
}

// IImageService defines the interface for secondary-store image operations.
type IImageService interface {
	FirstImageURLs(ctx context.Context, ids []string) (map[string]string, error)
	AddImage(ctx context.Context, recipeID string, data []byte, contentType string) (*model.RecipeImage, error)
}

// ISearchPipeline defines the interface for the retrieval-augmentation
// search pipeline.
type ISearchPipeline interface {
	Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error)
}

// IDetailService defines the interface for recipe detail normalization.
type IDetailService interface {
	GetRecipeDetail(ctx context.Context, id string) (*types.RecipeDetail, error)
}

// ISummaryService defines the interface for batch summary assembly.
type ISummaryService interface {
	GetSummaries(ctx context.Context, ids []string) ([]types.RecipeSummary, error)
}
