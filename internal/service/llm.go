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

	"github.com/platemate-ai/backend/internal/metrics"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const defaultGenerationModel = "gemini-1.5-flash"

// LLMService handles interactions with the Gemini generateContent API
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService() (*LLMService, error) {
	apiKey, err := loadGeminiAPIKey()
	if err != nil {
		return nil, err
	}

	apiURL := os.Getenv("GEMINI_API_URL")
	if apiURL == "" {
		apiURL = defaultGeminiBaseURL
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultGenerationModel
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: strings.TrimRight(apiURL, "/"),
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// loadGeminiAPIKey resolves the API key from the environment, falling back
// to a Docker-secrets style key file.
func loadGeminiAPIKey() (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey != "" {
		return apiKey, nil
	}

	apiKeyFile := os.Getenv("GEMINI_API_KEY_FILE")
	if apiKeyFile == "" {
		return "", fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
	}

	apiKeyBytes, err := os.ReadFile(apiKeyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}

	apiKey = strings.TrimSpace(string(apiKeyBytes))
	if apiKey == "" {
		return "", fmt.Errorf("API key file is empty")
	}

	return apiKey, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// generationConfig pins decoding so identical prompts yield identical text.
// Zero values are meaningful here and must serialize, hence no omitempty.
type generationConfig struct {
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"topK"`
	TopP        float64 `json:"topP"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateContentRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// relaxedSafetySettings disables every category filter. Ordinary recipe text
// (knives, flambe, butchering, alcohol) trips the default thresholds.
func relaxedSafetySettings() []safetySetting {
	return []safetySetting{
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
		{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
		{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
		{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
	}
}

// Generate sends one prompt and returns the model's text. One attempt, no
// retries; a safety block is reported as an error rather than as silently
// empty text.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature: 0,
			TopK:        1,
			TopP:        1,
		},
		SafetySettings: relaxedSafetySettings(),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.apiURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.GeminiRequests.WithLabelValues("generate", "error").Inc()
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GeminiRequests.WithLabelValues("generate", "error").Inc()
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.GeminiRequests.WithLabelValues("generate", "error").Inc()
		log.Printf("[LLMService] generateContent failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("generation request failed with status %d", resp.StatusCode)
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.GeminiRequests.WithLabelValues("generate", "error").Inc()
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 {
		metrics.GeminiRequests.WithLabelValues("generate", "error").Inc()
		if result.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked by safety filter: %s", result.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no candidates in API response")
	}

	candidate := result.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		metrics.GeminiRequests.WithLabelValues("generate", "error").Inc()
		return "", fmt.Errorf("empty candidate content (finish reason %q)", candidate.FinishReason)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}

	metrics.GeminiRequests.WithLabelValues("generate", "ok").Inc()
	return sb.String(), nil
}
