package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate-ai/backend/internal/service"
)

// SummaryHandler handles batch summary requests
type SummaryHandler struct {
	summaries service.ISummaryService
}

// NewSummaryHandler creates a new SummaryHandler instance
func NewSummaryHandler(summaries service.ISummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// GetSummaries returns card-sized summaries for a comma-separated ids
// parameter. Identifiers with no record are silently omitted from the
// result rather than reported as errors.
func (h *SummaryHandler) GetSummaries(c *gin.Context) {
	ids, err := service.ParseIDsParam(c.Query("ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrNoIDs.Error()})
		return
	}

	summaries, err := h.summaries.GetSummaries(c.Request.Context(), ids)
	if err != nil {
		if errors.Is(err, service.ErrNoIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrNoIDs.Error()})
			return
		}
		log.Printf("[SummaryHandler] Summary fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load summaries"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}
