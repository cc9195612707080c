package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/platemate-ai/backend/internal/model"
	"github.com/platemate-ai/backend/internal/types"
)

// SummaryService batch-assembles card-sized recipe summaries from the
// primary store and the image catalog. No generative step is involved.
type SummaryService struct {
	recipes IRecipeService
	images  IImageService
}

// NewSummaryService creates a new SummaryService instance
func NewSummaryService(recipes IRecipeService, images IImageService) *SummaryService {
	return &SummaryService{
		recipes: recipes,
		images:  images,
	}
}

// ParseIDsParam splits the comma-separated identifier parameter. Input with
// no usable identifiers at all is a client error.
func ParseIDsParam(param string) ([]string, error) {
	parts := strings.Split(param, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoIDs
	}
	return ids, nil
}

// GetSummaries merges primary-store projections with first-image URLs for
// the requested identifier set. The two reads are independent of each other
// and run concurrently. Identifiers without a primary record are silently
// omitted; missing images and fields stay explicit nulls.
func (s *SummaryService) GetSummaries(ctx context.Context, ids []string) ([]types.RecipeSummary, error) {
	if len(ids) == 0 {
		return nil, ErrNoIDs
	}

	type recipesResult struct {
		recipes []model.Recipe
		err     error
	}
	type imagesResult struct {
		urls map[string]string
		err  error
	}

	recipesCh := make(chan recipesResult, 1)
	imagesCh := make(chan imagesResult, 1)

	go func() {
		recipes, err := s.recipes.GetSummaries(ctx, ids)
		recipesCh <- recipesResult{recipes: recipes, err: err}
	}()
	go func() {
		urls, err := s.images.FirstImageURLs(ctx, ids)
		imagesCh <- imagesResult{urls: urls, err: err}
	}()

	recipesRes := <-recipesCh
	imagesRes := <-imagesCh

	if recipesRes.err != nil {
		return nil, fmt.Errorf("summary fetch failed: %w", recipesRes.err)
	}

	urls := imagesRes.urls
	if imagesRes.err != nil {
		// Image catalog trouble degrades to null URLs.
		log.Printf("[SummaryService] Image lookup failed, returning summaries without images: %v", imagesRes.err)
		urls = map[string]string{}
	}

	summaries := make([]types.RecipeSummary, 0, len(recipesRes.recipes))
	for _, recipe := range recipesRes.recipes {
		summary := types.RecipeSummary{
			ID:              recipe.ID.String(),
			Title:           recipe.Title,
			PrepTimeMinutes: recipe.PrepTimeMinutes,
			Servings:        recipe.Servings,
		}
		if url, ok := urls[summary.ID]; ok {
			summary.ImageURL = &url
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
