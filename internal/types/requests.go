package types

// CreateRecipeRequest represents the request body for the admin ingestion
// endpoint. The embedding is computed server-side from the submitted text.
type CreateRecipeRequest struct {
	Title           string   `json:"title" binding:"required"`
	Ingredients     []string `json:"ingredients" binding:"required"`
	Instructions    []string `json:"instructions" binding:"required"`
	PrepTimeMinutes *int     `json:"prepTimeMinutes"`
	Servings        *int     `json:"servings"`
}

// CreateRecipeResponse returns the stored identifier for a newly ingested
// recipe.
type CreateRecipeResponse struct {
	ID string `json:"id"`
}

// AddImageResponse returns the public URL recorded for an uploaded image.
type AddImageResponse struct {
	RecipeID string `json:"recipe_id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}
