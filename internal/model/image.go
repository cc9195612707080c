package model

import (
	"time"

	"github.com/google/uuid"
)

// RecipeImage is a row in the image catalog. Images live in their own store
// and are joined to recipes by RecipeID only at read time, so a missing row
// is a normal outcome rather than an integrity error.
type RecipeImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
