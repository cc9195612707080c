package types

// SearchRequest represents the request body for the recipe search endpoint.
// Facet fields are soft preferences handed to the language model; they never
// filter retrieval.
type SearchRequest struct {
	Query               string   `json:"query"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	CuisinePreferences  []string `json:"cuisinePreferences"`
	MealType            string   `json:"mealType"`
}

// RetrievedRecipe is one similarity hit projected out of the corpus. The
// identifier is normalized to a plain string the moment it leaves the store
// so it survives JSON round-trips without type drift, hence the `_id` tag.
type RetrievedRecipe struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Score        *float64 `json:"score"`
}

// EnrichedRecipe is a RetrievedRecipe with its image resolved. ImageURL is
// serialized as an explicit null when no image record matched.
type EnrichedRecipe struct {
	RetrievedRecipe
	ImageURL *string `json:"imageUrl"`
}

// SearchResponse is the search endpoint payload.
type SearchResponse struct {
	LLMResponse      string           `json:"llm_response"`
	RetrievedRecipes []EnrichedRecipe `json:"retrieved_recipes"`
}
