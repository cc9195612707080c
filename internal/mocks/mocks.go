package mocks

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/mock"

	"github.com/platemate-ai/backend/internal/model"
	"github.com/platemate-ai/backend/internal/types"
)

// MockEmbeddingClient is a mock implementation of the embedding client
type MockEmbeddingClient struct {
	mock.Mock
}

// GenerateEmbedding mocks the GenerateEmbedding method
func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	args := m.Called(ctx, text)
	if vec, ok := args.Get(0).(pgvector.Vector); ok {
		return vec, args.Error(1)
	}
	return pgvector.Vector{}, args.Error(1)
}

// MockGenerativeClient is a mock implementation of the generative client
type MockGenerativeClient struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockGenerativeClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockRecipeService is a mock implementation of the recipe store service
type MockRecipeService struct {
	mock.Mock
}

// SearchByEmbedding mocks the SearchByEmbedding method
func (m *MockRecipeService) SearchByEmbedding(ctx context.Context, embedding pgvector.Vector, limit int) ([]types.RetrievedRecipe, error) {
	args := m.Called(ctx, embedding, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RetrievedRecipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// GetSummaries mocks the GetSummaries method
func (m *MockRecipeService) GetSummaries(ctx context.Context, ids []string) ([]model.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// MockImageService is a mock implementation of the image catalog service
type MockImageService struct {
	mock.Mock
}

// FirstImageURLs mocks the FirstImageURLs method
func (m *MockImageService) FirstImageURLs(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// AddImage mocks the AddImage method
func (m *MockImageService) AddImage(ctx context.Context, recipeID string, data []byte, contentType string) (*model.RecipeImage, error) {
	args := m.Called(ctx, recipeID, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecipeImage), args.Error(1)
}

// MockSearchPipeline is a mock implementation of the search pipeline
type MockSearchPipeline struct {
	mock.Mock
}

// Search mocks the Search method
func (m *MockSearchPipeline) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SearchResponse), args.Error(1)
}

// MockDetailService is a mock implementation of the detail service
type MockDetailService struct {
	mock.Mock
}

// GetRecipeDetail mocks the GetRecipeDetail method
func (m *MockDetailService) GetRecipeDetail(ctx context.Context, id string) (*types.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// MockSummaryService is a mock implementation of the summary service
type MockSummaryService struct {
	mock.Mock
}

// GetSummaries mocks the GetSummaries method
func (m *MockSummaryService) GetSummaries(ctx context.Context, ids []string) ([]types.RecipeSummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}
