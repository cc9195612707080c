package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate-ai/backend/internal/service"
	"github.com/platemate-ai/backend/internal/types"
)

// SearchHandler handles recipe search requests
type SearchHandler struct {
	pipeline service.ISearchPipeline
}

// NewSearchHandler creates a new SearchHandler instance
func NewSearchHandler(pipeline service.ISearchPipeline) *SearchHandler {
	return &SearchHandler{pipeline: pipeline}
}

// Search runs the retrieval-augmentation pipeline for a free-text query.
// Validation and empty-retrieval outcomes are client errors with their rule
// in the message; anything upstream is a generic server error with the
// detail kept in the log.
func (h *SearchHandler) Search(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.pipeline.Search(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNoRecipesFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrNoRecipesFound.Error()})
		default:
			log.Printf("[SearchHandler] Search failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
