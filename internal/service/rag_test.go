package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/platemate-ai/backend/internal/mocks"
	"github.com/platemate-ai/backend/internal/types"
)

func scorePtr(v float64) *float64 { return &v }

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr string
	}{
		{
			name:  "plain words",
			query: "vegan pasta",
		},
		{
			name:  "punctuation and digits",
			query: "what's a quick dinner for 2 people?",
		},
		{
			name:  "accented letters",
			query: "crème brûlée",
		},
		{
			name:    "empty string",
			query:   "",
			wantErr: "query must not be empty",
		},
		{
			name:    "whitespace only",
			query:   "   \t  ",
			wantErr: "query must not be empty",
		},
		{
			name:    "disallowed characters",
			query:   "pasta <script>alert(1)</script>",
			wantErr: "query contains unsupported characters",
		},
		{
			name:    "digits only",
			query:   "12345",
			wantErr: "query must contain at least one letter",
		},
		{
			name:    "punctuation only",
			query:   "?!...",
			wantErr: "query must contain at least one letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuery)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRAGServiceSearch(t *testing.T) {
	ctx := context.Background()
	queryVector := pgvector.NewVector([]float32{0.1, 0.2, 0.3})

	retrieved := []types.RetrievedRecipe{
		{
			ID:           "0c6f81e5-27b7-4c3a-9b0f-1f8a30a5c9d2",
			Title:        "Creamy Vegan Pasta with Roasted Tomatoes",
			Ingredients:  []string{"pasta", "cashews", "cherry tomatoes"},
			Instructions: []string{"Roast the tomatoes", "Blend the sauce", "Toss with pasta"},
			Score:        scorePtr(0.8123),
		},
		{
			ID:           "6a4af0f3-55c8-4f3e-8c36-2d8f04f6f7a1",
			Title:        "Thai Green Curry",
			Ingredients:  []string{"coconut milk", "green curry paste"},
			Instructions: []string{"Simmer everything"},
			Score:        scorePtr(0.6034),
		},
	}

	t.Run("should reject invalid queries before any upstream call", func(t *testing.T) {
		embedder := new(mocks.MockEmbeddingClient)
		llm := new(mocks.MockGenerativeClient)
		recipes := new(mocks.MockRecipeService)
		images := new(mocks.MockImageService)
		svc := NewRAGService(embedder, llm, recipes, images)

		resp, err := svc.Search(ctx, types.SearchRequest{Query: "   "})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrInvalidQuery)
		embedder.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything)
		recipes.AssertNotCalled(t, "SearchByEmbedding", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should skip generation when retrieval comes back empty", func(t *testing.T) {
		embedder := new(mocks.MockEmbeddingClient)
		llm := new(mocks.MockGenerativeClient)
		recipes := new(mocks.MockRecipeService)
		images := new(mocks.MockImageService)
		svc := NewRAGService(embedder, llm, recipes, images)

		embedder.On("GenerateEmbedding", mock.Anything, "durian smoothie").Return(queryVector, nil)
		recipes.On("SearchByEmbedding", mock.Anything, queryVector, 5).Return([]types.RetrievedRecipe{}, nil)

		resp, err := svc.Search(ctx, types.SearchRequest{Query: "durian smoothie"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrNoRecipesFound)
		llm.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		images.AssertNotCalled(t, "FirstImageURLs", mock.Anything, mock.Anything)
		embedder.AssertExpectations(t)
		recipes.AssertExpectations(t)
	})

	t.Run("should return the answer with recipes enriched in retrieval order", func(t *testing.T) {
		embedder := new(mocks.MockEmbeddingClient)
		llm := new(mocks.MockGenerativeClient)
		recipes := new(mocks.MockRecipeService)
		images := new(mocks.MockImageService)
		svc := NewRAGService(embedder, llm, recipes, images)

		answer := "Recipe 1 (Score: 0.8123): Creamy Vegan Pasta with Roasted Tomatoes"
		var prompt string

		embedder.On("GenerateEmbedding", mock.Anything, "vegan pasta").Return(queryVector, nil)
		recipes.On("SearchByEmbedding", mock.Anything, queryVector, 5).Return(retrieved, nil)
		llm.On("Generate", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { prompt = args.String(1) }).
			Return(answer, nil)
		images.On("FirstImageURLs", mock.Anything, []string{retrieved[0].ID, retrieved[1].ID}).
			Return(map[string]string{retrieved[0].ID: "https://cdn.example.com/pasta.jpg"}, nil)

		resp, err := svc.Search(ctx, types.SearchRequest{Query: "vegan pasta"})

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, answer, resp.LLMResponse)

		require.Len(t, resp.RetrievedRecipes, 2)
		assert.Equal(t, retrieved[0].ID, resp.RetrievedRecipes[0].ID)
		assert.Equal(t, retrieved[1].ID, resp.RetrievedRecipes[1].ID)
		require.NotNil(t, resp.RetrievedRecipes[0].ImageURL)
		assert.Equal(t, "https://cdn.example.com/pasta.jpg", *resp.RetrievedRecipes[0].ImageURL)
		assert.Nil(t, resp.RetrievedRecipes[1].ImageURL)

		assert.Contains(t, prompt, `"vegan pasta"`)
		assert.Contains(t, prompt, `Recipe 1 - Title: "Creamy Vegan Pasta with Roasted Tomatoes", Score: 0.8123`)
		assert.Contains(t, prompt, `Recipe 2 - Title: "Thai Green Curry", Score: 0.6034`)
		assert.Contains(t, prompt, FallbackSentence)

		embedder.AssertExpectations(t)
		recipes.AssertExpectations(t)
		llm.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("should trim the query before embedding it", func(t *testing.T) {
		embedder := new(mocks.MockEmbeddingClient)
		llm := new(mocks.MockGenerativeClient)
		recipes := new(mocks.MockRecipeService)
		images := new(mocks.MockImageService)
		svc := NewRAGService(embedder, llm, recipes, images)

		embedder.On("GenerateEmbedding", mock.Anything, "vegan pasta").Return(queryVector, nil)
		recipes.On("SearchByEmbedding", mock.Anything, queryVector, 5).Return(retrieved[:1], nil)
		llm.On("Generate", mock.Anything, mock.Anything).Return("Recipe 1 (Score: 0.8123): Creamy Vegan Pasta with Roasted Tomatoes", nil)
		images.On("FirstImageURLs", mock.Anything, mock.Anything).Return(map[string]string{}, nil)

		_, err := svc.Search(ctx, types.SearchRequest{Query: "  vegan pasta  "})

		require.NoError(t, err)
		embedder.AssertExpectations(t)
	})

	t.Run("should suppress the recipe list when the model declares no match", func(t *testing.T) {
		embedder := new(mocks.MockEmbeddingClient)
		llm := new(mocks.MockGenerativeClient)
		recipes := new(mocks.MockRecipeService)
		images := new(mocks.MockImageService)
		svc := NewRAGService(embedder, llm, recipes, images)

		embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(queryVector, nil)
		recipes.On("SearchByEmbedding", mock.Anything, mock.Anything, 5).Return(retrieved, nil)
		llm.On("Generate", mock.Anything, mock.Anything).Return(FallbackSentence, nil)
		images.On("FirstImageURLs", mock.Anything, mock.Anything).Return(map[string]string{}, nil)

		resp, err := svc.Search(ctx, types.SearchRequest{Query: "medieval siege engines"})

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, FallbackSentence, resp.LLMResponse)
		require.NotNil(t, resp.RetrievedRecipes)
		assert.Empty(t, resp.RetrievedRecipes)

		// The empty list must serialize as [], not null.
		body, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"retrieved_recipes":[]`)
	})

	t.Run("should continue without images when the catalog lookup fails", func(t *testing.T) {
		embedder := new(mocks.MockEmbeddingClient)
		llm := new(mocks.MockGenerativeClient)
		recipes := new(mocks.MockRecipeService)
		images := new(mocks.MockImageService)
		svc := NewRAGService(embedder, llm, recipes, images)

		embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(queryVector, nil)
		recipes.On("SearchByEmbedding", mock.Anything, mock.Anything, 5).Return(retrieved, nil)
		llm.On("Generate", mock.Anything, mock.Anything).Return("Recipe 1 (Score: 0.8123): Creamy Vegan Pasta with Roasted Tomatoes", nil)
		images.On("FirstImageURLs", mock.Anything, mock.Anything).Return(nil, errors.New("image store is down"))

		resp, err := svc.Search(ctx, types.SearchRequest{Query: "vegan pasta"})

		require.NoError(t, err)
		require.Len(t, resp.RetrievedRecipes, 2)
		assert.Nil(t, resp.RetrievedRecipes[0].ImageURL)
		assert.Nil(t, resp.RetrievedRecipes[1].ImageURL)
	})

	t.Run("should wrap embedding failures", func(t *testing.T) {
		embedder := new(mocks.MockEmbeddingClient)
		llm := new(mocks.MockGenerativeClient)
		recipes := new(mocks.MockRecipeService)
		images := new(mocks.MockImageService)
		svc := NewRAGService(embedder, llm, recipes, images)

		embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(pgvector.Vector{}, errors.New("quota exhausted"))

		resp, err := svc.Search(ctx, types.SearchRequest{Query: "vegan pasta"})

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidQuery)
		assert.Contains(t, err.Error(), "query embedding failed")
		recipes.AssertNotCalled(t, "SearchByEmbedding", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should wrap generation failures", func(t *testing.T) {
		embedder := new(mocks.MockEmbeddingClient)
		llm := new(mocks.MockGenerativeClient)
		recipes := new(mocks.MockRecipeService)
		images := new(mocks.MockImageService)
		svc := NewRAGService(embedder, llm, recipes, images)

		embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(queryVector, nil)
		recipes.On("SearchByEmbedding", mock.Anything, mock.Anything, 5).Return(retrieved, nil)
		llm.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("model overloaded"))

		resp, err := svc.Search(ctx, types.SearchRequest{Query: "vegan pasta"})

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "answer generation failed")
		images.AssertNotCalled(t, "FirstImageURLs", mock.Anything, mock.Anything)
	})
}

func TestRenderContext(t *testing.T) {
	t.Run("should format scores to four decimals", func(t *testing.T) {
		got := renderContext([]types.RetrievedRecipe{
			{Title: "Creamy Vegan Pasta with Roasted Tomatoes", Score: scorePtr(0.8123)},
			{Title: "Hearty Lentil Soup", Score: scorePtr(0.25)},
		})

		want := "Recipe 1 - Title: \"Creamy Vegan Pasta with Roasted Tomatoes\", Score: 0.8123\n" +
			"Recipe 2 - Title: \"Hearty Lentil Soup\", Score: 0.2500"
		assert.Equal(t, want, got)
	})

	t.Run("should render missing scores as N/A", func(t *testing.T) {
		got := renderContext([]types.RetrievedRecipe{
			{Title: "Thai Green Curry", Score: nil},
		})

		assert.Equal(t, `Recipe 1 - Title: "Thai Green Curry", Score: N/A`, got)
	})
}

func TestBuildSearchPrompt(t *testing.T) {
	contextBlock := `Recipe 1 - Title: "Creamy Vegan Pasta with Roasted Tomatoes", Score: 0.8123`

	t.Run("should carry the query and context verbatim", func(t *testing.T) {
		prompt := buildSearchPrompt("vegan pasta", contextBlock, types.SearchRequest{})

		assert.Contains(t, prompt, `"vegan pasta"`)
		assert.Contains(t, prompt, contextBlock)
		assert.Contains(t, prompt, "Recipe X (Score: Y.YYYY): Title")
		assert.Contains(t, prompt, FallbackSentence)
		assert.NotContains(t, prompt, "dietary restrictions")
		assert.NotContains(t, prompt, "cuisines")
	})

	t.Run("should include every facet preference when present", func(t *testing.T) {
		prompt := buildSearchPrompt("pasta", contextBlock, types.SearchRequest{
			DietaryRestrictions: []string{"vegan", "gluten-free"},
			CuisinePreferences:  []string{"Italian"},
			MealType:            "dinner",
		})

		assert.Contains(t, prompt, "vegan, gluten-free")
		assert.Contains(t, prompt, "Italian")
		assert.Contains(t, prompt, "dinner")
	})
}
