package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"

	"github.com/platemate-ai/backend/internal/metrics"
	"github.com/platemate-ai/backend/internal/types"
)

// FallbackSentence is the fixed sentinel the model must emit when the
// grounding context has no usable match. Detection is an exact substring
// check, so this text is part of the API contract.
const FallbackSentence = "I don't have enough information about recipes."

// queryAllowedChars is the allow-list for search input: letters, digits,
// whitespace and common punctuation.
var queryAllowedChars = regexp.MustCompile(`^[\p{L}\p{N}\s.,'"!?()&%/:;-]+$`)

// ValidateQuery enforces the hard precondition on search input. No
// downstream call may be made when it fails. The wrapped message names the
// violated rule.
func ValidateQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("%w: query must not be empty", ErrInvalidQuery)
	}
	if !queryAllowedChars.MatchString(trimmed) {
		return fmt.Errorf("%w: query contains unsupported characters", ErrInvalidQuery)
	}
	if !containsLetter(trimmed) {
		return fmt.Errorf("%w: query must contain at least one letter", ErrInvalidQuery)
	}
	return nil
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// RAGService composes embedding, retrieval, generation and image enrichment
// into the recipe search pipeline.
type RAGService struct {
	embedder IEmbeddingClient
	llm      IGenerativeClient
	recipes  IRecipeService
	images   IImageService
}

// NewRAGService creates a new RAGService instance
func NewRAGService(embedder IEmbeddingClient, llm IGenerativeClient, recipes IRecipeService, images IImageService) *RAGService {
	return &RAGService{
		embedder: embedder,
		llm:      llm,
		recipes:  recipes,
		images:   images,
	}
}

// Search runs the full retrieval-augmentation pipeline for one query:
// validate, embed, retrieve, ground, generate, enrich, reconcile. Each
// external call is attempted exactly once.
func (s *RAGService) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	if err := ValidateQuery(req.Query); err != nil {
		metrics.SearchRequests.WithLabelValues("invalid").Inc()
		return nil, err
	}
	query := strings.TrimSpace(req.Query)

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	retrieved, err := s.recipes.SearchByEmbedding(ctx, embedding, searchTopK)
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("recipe retrieval failed: %w", err)
	}

	// Nothing to ground a generation in, so the model call is skipped
	// entirely.
	if len(retrieved) == 0 {
		metrics.SearchRequests.WithLabelValues("no_results").Inc()
		return nil, ErrNoRecipesFound
	}

	prompt := buildSearchPrompt(query, renderContext(retrieved), req)

	answer, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	enriched := s.enrich(ctx, retrieved)

	// The generated text is authoritative for display: when the model
	// declares no match, the retrieval list is suppressed.
	outcome := "ok"
	if strings.Contains(answer, FallbackSentence) {
		log.Printf("[RAGService] Fallback sentence for query %q, suppressing %d retrieved recipes", query, len(enriched))
		enriched = make([]types.EnrichedRecipe, 0)
		outcome = "fallback"
	}
	metrics.SearchRequests.WithLabelValues(outcome).Inc()

	return &types.SearchResponse{
		LLMResponse:      answer,
		RetrievedRecipes: enriched,
	}, nil
}

// renderContext formats one grounding line per hit:
//
//	Recipe <rank> - Title: "<title>", Score: <score>
//
// with scores fixed to 4 decimals and N/A when the store produced none.
func renderContext(retrieved []types.RetrievedRecipe) string {
	lines := make([]string, 0, len(retrieved))
	for i, recipe := range retrieved {
		score := "N/A"
		if recipe.Score != nil {
			score = fmt.Sprintf("%.4f", *recipe.Score)
		}
		lines = append(lines, fmt.Sprintf("Recipe %d - Title: %q, Score: %s", i+1, recipe.Title, score))
	}
	return strings.Join(lines, "\n")
}

// buildSearchPrompt assembles the generation prompt: the literal user query,
// the rendered context verbatim, the facet preferences, and the output
// rules including the fixed fallback sentence.
func buildSearchPrompt(query, contextBlock string, req types.SearchRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a recipe search assistant. A user asked: ")
	sb.WriteString(fmt.Sprintf("%q\n\n", query))

	sb.WriteString("These recipes were retrieved from the recipe database, ranked by similarity:\n")
	sb.WriteString(contextBlock)
	sb.WriteString("\n")

	if len(req.DietaryRestrictions) > 0 {
		sb.WriteString("\nPrefer recipes compatible with these dietary restrictions: ")
		sb.WriteString(strings.Join(req.DietaryRestrictions, ", "))
		sb.WriteString(".")
	}
	if len(req.CuisinePreferences) > 0 {
		sb.WriteString("\nPrefer recipes from these cuisines: ")
		sb.WriteString(strings.Join(req.CuisinePreferences, ", "))
		sb.WriteString(".")
	}
	if req.MealType != "" {
		sb.WriteString("\nPrefer recipes suitable as: ")
		sb.WriteString(req.MealType)
		sb.WriteString(".")
	}

	sb.WriteString("\n\nRules:\n")
	sb.WriteString("1. Answer using ONLY the recipes listed above.\n")
	sb.WriteString("2. List every relevant recipe on its own line in exactly this format: Recipe X (Score: Y.YYYY): Title\n")
	sb.WriteString("3. Keep the retrieval order; never renumber or reorder recipes.\n")
	sb.WriteString(fmt.Sprintf("4. If none of the recipes fit the request, reply with exactly: %s\n", FallbackSentence))
	sb.WriteString("5. Output nothing else: no introductions, no explanations, no markdown.\n")

	return sb.String()
}

// enrich resolves first-image URLs for the retrieved set, preserving rank
// order. Lookup failure is downgraded to null image URLs; enrichment never
// fails the request.
func (s *RAGService) enrich(ctx context.Context, retrieved []types.RetrievedRecipe) []types.EnrichedRecipe {
	ids := make([]string, 0, len(retrieved))
	for _, recipe := range retrieved {
		if recipe.ID != "" {
			ids = append(ids, recipe.ID)
		}
	}

	urls, err := s.images.FirstImageURLs(ctx, ids)
	if err != nil {
		log.Printf("[RAGService] Image enrichment failed, continuing without images: %v", err)
		urls = map[string]string{}
	}

	enriched := make([]types.EnrichedRecipe, 0, len(retrieved))
	for _, recipe := range retrieved {
		item := types.EnrichedRecipe{RetrievedRecipe: recipe}
		if url, ok := urls[recipe.ID]; ok {
			item.ImageURL = &url
		}
		enriched = append(enriched, item)
	}
	return enriched
}
