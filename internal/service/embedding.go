package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/platemate-ai/backend/internal/metrics"
)

const defaultEmbeddingModel = "text-embedding-004"

// embeddingDimensions must match the vector column width on the recipes
// table; a model emitting a different width would poison the index.
const embeddingDimensions = 768

// EmbeddingService calls the Gemini embedContent endpoint to turn free text
// into corpus-space vectors.
type EmbeddingService struct {
	apiKey     string
	apiURL     string
	model      string
	dimensions int
	client     *http.Client
}

// NewEmbeddingService creates a new EmbeddingService instance
func NewEmbeddingService() (*EmbeddingService, error) {
	apiKey, err := loadGeminiAPIKey()
	if err != nil {
		return nil, err
	}

	apiURL := os.Getenv("GEMINI_API_URL")
	if apiURL == "" {
		apiURL = defaultGeminiBaseURL
	}

	model := os.Getenv("GEMINI_EMBEDDING_MODEL")
	if model == "" {
		model = defaultEmbeddingModel
	}

	return &EmbeddingService{
		apiKey:     apiKey,
		apiURL:     strings.TrimRight(apiURL, "/"),
		model:      model,
		dimensions: embeddingDimensions,
		client:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type embedContentRequest struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

type embedContentResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// GenerateEmbedding returns the vector for the given text. One attempt, no
// retries; failures bubble up to the caller.
func (s *EmbeddingService) GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if strings.TrimSpace(text) == "" {
		return pgvector.Vector{}, fmt.Errorf("cannot embed empty text")
	}

	reqBody := embedContentRequest{
		Model:   "models/" + s.model,
		Content: geminiContent{Parts: []geminiPart{{Text: text}}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:embedContent", s.apiURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.GeminiRequests.WithLabelValues("embed", "error").Inc()
		return pgvector.Vector{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeminiRequests.WithLabelValues("embed", "error").Inc()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return pgvector.Vector{}, fmt.Errorf("failed to read error response: %w", readErr)
		}
		log.Printf("[EmbeddingService] embedContent failed with status %d: %s", resp.StatusCode, string(body))
		return pgvector.Vector{}, fmt.Errorf("embedding request failed with status %d", resp.StatusCode)
	}

	var result embedContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.GeminiRequests.WithLabelValues("embed", "error").Inc()
		return pgvector.Vector{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Embedding.Values) == 0 {
		metrics.GeminiRequests.WithLabelValues("embed", "error").Inc()
		return pgvector.Vector{}, fmt.Errorf("no embedding in API response")
	}
	if len(result.Embedding.Values) != s.dimensions {
		metrics.GeminiRequests.WithLabelValues("embed", "error").Inc()
		return pgvector.Vector{}, fmt.Errorf("unexpected embedding width %d, want %d", len(result.Embedding.Values), s.dimensions)
	}

	metrics.GeminiRequests.WithLabelValues("embed", "ok").Inc()
	return pgvector.NewVector(result.Embedding.Values), nil
}
