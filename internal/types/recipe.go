package types

// Nutrition holds per-serving estimates produced by the generative
// normalization step. Values are culinary ballparks, not lab measurements.
type Nutrition struct {
	Calories      float64 `json:"calories"`
	TotalFat      float64 `json:"totalFat"`
	SaturatedFat  float64 `json:"saturatedFat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugar         float64 `json:"sugar"`
	Protein       float64 `json:"protein"`
}

// RecipeDetail is the normalized detail payload: the model restructures the
// raw corpus record into this fixed schema, then the image URL is attached
// best-effort afterwards.
type RecipeDetail struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	PrepTimeMinutes int       `json:"prepTimeMinutes"`
	Servings        int       `json:"servings"`
	Ingredients     []string  `json:"ingredients"`
	Instructions    []string  `json:"instructions"`
	Nutrition       Nutrition `json:"nutrition"`
	ImageURL        *string   `json:"imageUrl"`
}

// RecipeSummary is the card-sized projection for list views. Nullable fields
// stay explicit nulls so clients can render placeholders without probing for
// missing keys.
type RecipeSummary struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	PrepTimeMinutes *int    `json:"prepTimeMinutes"`
	Servings        *int    `json:"servings"`
	ImageURL        *string `json:"imageUrl"`
}
