package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platemate-ai/backend/config"
	"github.com/platemate-ai/backend/internal/model"
)

// ImageService handles the image catalog and its S3-backed ingestion. The
// catalog lives in its own store and is consulted strictly best-effort on
// read paths.
type ImageService struct {
	db       *gorm.DB
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance. The S3 side is
// optional; without it the catalog is read-only.
func NewImageService(db *gorm.DB, s3Config *config.S3Config) *ImageService {
	return &ImageService{db: db, s3Config: s3Config}
}

// FirstImageURLs batch-fetches image records for exactly the given
// identifier set and maps each recipe to its first image URL. Recipes
// without a usable image are absent from the map, never mapped to an empty
// string.
func (s *ImageService) FirstImageURLs(ctx context.Context, ids []string) (map[string]string, error) {
	urls := make(map[string]string, len(ids))

	recipeIDs := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		recipeIDs = append(recipeIDs, id)
	}
	if len(recipeIDs) == 0 {
		return urls, nil
	}

	var records []model.RecipeImage
	if err := s.db.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Order("recipe_id, position").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("image lookup failed: %w", err)
	}

	for _, record := range records {
		key := record.RecipeID.String()
		if _, exists := urls[key]; exists {
			continue
		}
		if record.URL == "" {
			continue
		}
		urls[key] = record.URL
	}
	return urls, nil
}

// AddImage uploads image bytes to S3 and records the public URL in the
// catalog, appended after any existing images for the recipe.
func (s *ImageService) AddImage(ctx context.Context, recipeID string, data []byte, contentType string) (*model.RecipeImage, error) {
	if s.s3Config == nil || s.s3Config.Client == nil {
		return nil, fmt.Errorf("image uploads are not configured")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image payload is empty")
	}

	id, err := uuid.Parse(strings.TrimSpace(recipeID))
	if err != nil {
		return nil, ErrRecipeNotFound
	}

	fileName := fmt.Sprintf("recipe-images/%s/%s%s", id, uuid.New().String(), extensionFor(contentType))

	url, err := s.UploadImageToS3(ctx, data, fileName, contentType)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&model.RecipeImage{}).
		Where("recipe_id = ?", id).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("image count failed: %w", err)
	}

	record := &model.RecipeImage{
		ID:       uuid.New(),
		RecipeID: id,
		URL:      url,
		Position: int(existing),
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("image insert failed: %w", err)
	}
	return record, nil
}

// UploadImageToS3 uploads image data to S3 and returns the public URL
func (s *ImageService) UploadImageToS3(ctx context.Context, imageData []byte, fileName, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/png"
	}

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Successfully uploaded image to S3: %s", publicURL)

	return publicURL, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
