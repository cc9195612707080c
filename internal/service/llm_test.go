package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLLMService(t *testing.T, serverURL string) *LLMService {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-api-key")
	t.Setenv("GEMINI_API_KEY_FILE", "")
	t.Setenv("GEMINI_API_URL", serverURL)
	t.Setenv("GEMINI_MODEL", "")

	svc, err := NewLLMService()
	require.NoError(t, err)
	return svc
}

func generateResponse(parts ...string) string {
	texts := make([]map[string]string, 0, len(parts))
	for _, part := range parts {
		texts = append(texts, map[string]string{"text": part})
	}
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"role": "model", "parts": texts}},
		},
	})
	return string(body)
}

func TestNewLLMService(t *testing.T) {
	t.Run("should default the model and base URL", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-api-key")
		t.Setenv("GEMINI_API_KEY_FILE", "")
		t.Setenv("GEMINI_API_URL", "")
		t.Setenv("GEMINI_MODEL", "")

		svc, err := NewLLMService()

		require.NoError(t, err)
		assert.Equal(t, "gemini-1.5-flash", svc.model)
		assert.Equal(t, defaultGeminiBaseURL, svc.apiURL)
	})

	t.Run("should fail without an API key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GEMINI_API_KEY_FILE", "")

		svc, err := NewLLMService()

		assert.Nil(t, svc)
		assert.Error(t, err)
	})
}

func TestLLMServiceGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("should pin deterministic decoding and disable safety filters", func(t *testing.T) {
		var gotPath string
		var rawBody []byte
		var gotBody generateContentRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			rawBody, _ = io.ReadAll(r.Body)
			_ = json.Unmarshal(rawBody, &gotBody)
			_, _ = w.Write([]byte(generateResponse("Recipe 1 (Score: 0.8123): Creamy Vegan Pasta with Roasted Tomatoes")))
		}))
		defer server.Close()

		svc := newTestLLMService(t, server.URL)
		answer, err := svc.Generate(ctx, "find me vegan pasta")

		require.NoError(t, err)
		assert.Equal(t, "Recipe 1 (Score: 0.8123): Creamy Vegan Pasta with Roasted Tomatoes", answer)
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)

		require.Len(t, gotBody.Contents, 1)
		assert.Equal(t, "user", gotBody.Contents[0].Role)
		require.Len(t, gotBody.Contents[0].Parts, 1)
		assert.Equal(t, "find me vegan pasta", gotBody.Contents[0].Parts[0].Text)

		assert.Equal(t, 0.0, gotBody.GenerationConfig.Temperature)
		assert.Equal(t, 1, gotBody.GenerationConfig.TopK)
		assert.Equal(t, 1.0, gotBody.GenerationConfig.TopP)

		// Zero values must be present on the wire, not omitted.
		assert.Contains(t, string(rawBody), `"temperature":0`)

		require.Len(t, gotBody.SafetySettings, 4)
		categories := make([]string, 0, 4)
		for _, setting := range gotBody.SafetySettings {
			categories = append(categories, setting.Category)
			assert.Equal(t, "BLOCK_NONE", setting.Threshold)
		}
		assert.ElementsMatch(t, []string{
			"HARM_CATEGORY_HARASSMENT",
			"HARM_CATEGORY_HATE_SPEECH",
			"HARM_CATEGORY_SEXUALLY_EXPLICIT",
			"HARM_CATEGORY_DANGEROUS_CONTENT",
		}, categories)
	})

	t.Run("should concatenate multi-part candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(generateResponse("Hello ", "world")))
		}))
		defer server.Close()

		svc := newTestLLMService(t, server.URL)
		answer, err := svc.Generate(ctx, "greet")

		require.NoError(t, err)
		assert.Equal(t, "Hello world", answer)
	})

	t.Run("should surface non-200 responses as errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": "internal"}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := newTestLLMService(t, server.URL)
		_, err := svc.Generate(ctx, "find me vegan pasta")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "generation request failed with status 500")
	})

	t.Run("should report a safety block by its reason", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`))
		}))
		defer server.Close()

		svc := newTestLLMService(t, server.URL)
		_, err := svc.Generate(ctx, "find me vegan pasta")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "prompt blocked by safety filter: SAFETY")
	})

	t.Run("should report an empty candidate list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates": []}`))
		}))
		defer server.Close()

		svc := newTestLLMService(t, server.URL)
		_, err := svc.Generate(ctx, "find me vegan pasta")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no candidates in API response")
	})

	t.Run("should report a candidate with no content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": []}, "finishReason": "MAX_TOKENS"}]}`))
		}))
		defer server.Close()

		svc := newTestLLMService(t, server.URL)
		_, err := svc.Generate(ctx, "find me vegan pasta")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty candidate content")
		assert.Contains(t, err.Error(), "MAX_TOKENS")
	})
}
