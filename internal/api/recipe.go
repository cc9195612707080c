package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate-ai/backend/internal/service"
)

// RecipeHandler handles single-recipe detail requests
type RecipeHandler struct {
	details service.IDetailService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(details service.IDetailService) *RecipeHandler {
	return &RecipeHandler{details: details}
}

// GetRecipe returns one recipe normalized into the fixed detail schema. A
// missing record is 404; a generation or parse failure is a generic 500
// with the detail kept in the log.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.details.GetRecipeDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		log.Printf("[RecipeHandler] Detail for recipe %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return
	}

	c.JSON(http.StatusOK, detail)
}
