package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/platemate-ai/backend/internal/model"
	"github.com/platemate-ai/backend/internal/service"
	"github.com/platemate-ai/backend/internal/types"
)

// maxImageBytes caps admin image uploads.
const maxImageBytes = 10 << 20

// AdminHandler handles corpus ingestion requests
type AdminHandler struct {
	embedder service.IEmbeddingClient
	recipes  service.IRecipeService
	images   service.IImageService
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(embedder service.IEmbeddingClient, recipes service.IRecipeService, images service.IImageService) *AdminHandler {
	return &AdminHandler{
		embedder: embedder,
		recipes:  recipes,
		images:   images,
	}
}

// CreateRecipe ingests one recipe. The embedding is computed server-side
// from the submitted text and stored alongside the record.
func (h *AdminHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	document := req.Title + "\n" + strings.Join(req.Ingredients, "\n")
	embedding, err := h.embedder.GenerateEmbedding(c.Request.Context(), document)
	if err != nil {
		log.Printf("[AdminHandler] Embedding for recipe %q failed: %v", req.Title, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest recipe"})
		return
	}

	recipe := &model.Recipe{
		Title:           req.Title,
		Ingredients:     model.JSONBStringArray(req.Ingredients),
		Instructions:    model.JSONBStringArray(req.Instructions),
		PrepTimeMinutes: req.PrepTimeMinutes,
		Servings:        req.Servings,
		Embedding:       embedding,
	}
	if _, err := h.recipes.CreateRecipe(c.Request.Context(), recipe); err != nil {
		log.Printf("[AdminHandler] Insert for recipe %q failed: %v", req.Title, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest recipe"})
		return
	}

	c.JSON(http.StatusCreated, types.CreateRecipeResponse{ID: recipe.ID.String()})
}

// AddImage stores an uploaded image for an existing recipe and records its
// public URL in the image catalog.
func (h *AdminHandler) AddImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.recipes.GetRecipe(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		log.Printf("[AdminHandler] Recipe lookup for image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[AdminHandler] Opening uploaded image failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[AdminHandler] Reading uploaded image failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	record, err := h.images.AddImage(c.Request.Context(), id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("[AdminHandler] Image upload for recipe %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, types.AddImageResponse{
		RecipeID: record.RecipeID.String(),
		URL:      record.URL,
		Position: record.Position,
	})
}
