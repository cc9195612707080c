package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/platemate-ai/backend/internal/model"
	"github.com/platemate-ai/backend/internal/types"
)

// DetailService normalizes raw corpus records into the fixed detail schema
// through a generative transformation.
type DetailService struct {
	recipes IRecipeService
	llm     IGenerativeClient
	images  IImageService
}

// NewDetailService creates a new DetailService instance
func NewDetailService(recipes IRecipeService, llm IGenerativeClient, images IImageService) *DetailService {
	return &DetailService{
		recipes: recipes,
		llm:     llm,
		images:  images,
	}
}

type detailPayload struct {
	Title           string          `json:"title"`
	PrepTimeMinutes int             `json:"prepTimeMinutes"`
	Servings        int             `json:"servings"`
	Ingredients     []string        `json:"ingredients"`
	Instructions    []string        `json:"instructions"`
	Nutrition       types.Nutrition `json:"nutrition"`
}

// GetRecipeDetail fetches one raw recipe and asks the model to restructure
// it into the fixed schema. A missing record is a not-found error; an
// unparseable model response is a formatting failure, reported separately.
func (s *DetailService) GetRecipeDetail(ctx context.Context, id string) (*types.RecipeDetail, error) {
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Generate(ctx, buildDetailPrompt(recipe))
	if err != nil {
		return nil, fmt.Errorf("detail generation failed: %w", err)
	}

	payload, err := parseDetailPayload(raw)
	if err != nil {
		log.Printf("[DetailService] Unparseable model output for recipe %s: %v", recipe.ID, err)
		return nil, fmt.Errorf("detail formatting failed: %w", err)
	}
	if payload.Title == "" {
		payload.Title = recipe.Title
	}

	detail := &types.RecipeDetail{
		ID:              recipe.ID.String(),
		Title:           payload.Title,
		PrepTimeMinutes: payload.PrepTimeMinutes,
		Servings:        payload.Servings,
		Ingredients:     payload.Ingredients,
		Instructions:    payload.Instructions,
		Nutrition:       payload.Nutrition,
	}

	// Image absence or lookup failure must never fail the detail request.
	urls, err := s.images.FirstImageURLs(ctx, []string{detail.ID})
	if err != nil {
		log.Printf("[DetailService] Image lookup failed for recipe %s: %v", detail.ID, err)
	} else if url, ok := urls[detail.ID]; ok {
		detail.ImageURL = &url
	}

	return detail, nil
}

// buildDetailPrompt renders the raw record and the target schema. The model
// estimates time, servings and per-serving nutrition; it corrects obvious
// ingredient formatting defects without rewriting them.
func buildDetailPrompt(recipe *model.Recipe) string {
	var sb strings.Builder

	sb.WriteString("Reformat this recipe into clean structured data.\n\n")
	sb.WriteString("Title: ")
	sb.WriteString(recipe.Title)
	sb.WriteString("\nIngredients:\n")
	for _, ingredient := range recipe.Ingredients {
		sb.WriteString("- ")
		sb.WriteString(ingredient)
		sb.WriteString("\n")
	}
	sb.WriteString("Instructions:\n")
	for _, step := range recipe.Instructions {
		sb.WriteString("- ")
		sb.WriteString(step)
		sb.WriteString("\n")
	}

	sb.WriteString(`
Respond with a JSON object in exactly this structure:
{
    "title": "Recipe title",
    "prepTimeMinutes": 30,
    "servings": 4,
    "ingredients": [
        "2 cups flour",
        "1/2 cup sugar"
    ],
    "instructions": [
        "1. Mix the dry ingredients",
        "2. Bake at 350F for 30 minutes"
    ],
    "nutrition": {
        "calories": 350,
        "totalFat": 12,
        "saturatedFat": 4,
        "carbohydrates": 45,
        "sugar": 20,
        "protein": 15
    }
}

Assume the recipe serves 2 to 4 people and estimate prepTimeMinutes and the per-serving nutrition using standard culinary heuristics.
Fix obvious ingredient formatting defects (for example a fraction glued to a unit) but do not rewrite the ingredients.
Number the instructions as a clear step sequence.
The prepTimeMinutes, servings and nutrition fields must be numbers, not strings.
Respond with the raw JSON object only: no markdown fences, no commentary.`)

	return sb.String()
}

// parseDetailPayload cuts the outermost JSON object out of the model text,
// which also discards any code-fence wrapper or stray prose, then decodes
// it. Numeric fields arriving as strings fail the decode on purpose.
func parseDetailPayload(raw string) (*detailPayload, error) {
	content := strings.TrimSpace(raw)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var payload detailPayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}
	return &payload, nil
}
