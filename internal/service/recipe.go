package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/platemate-ai/backend/internal/model"
	"github.com/platemate-ai/backend/internal/types"
)

// Candidate sizing for the nearest-neighbour scan. hnsw.ef_search accepts
// 1..1000, so the wider breadth hint clamps to the engine ceiling.
const (
	searchTopK      = 5
	searchBreadth   = 5000
	maxHNSWEfSearch = 1000
)

// RecipeService handles primary-store recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

type searchRow struct {
	ID           uuid.UUID
	Title        string
	Ingredients  model.JSONBStringArray
	Instructions model.JSONBStringArray
	Score        float64
}

// SearchByEmbedding runs a top-K approximate nearest-neighbour scan over the
// corpus, projecting only the retrieval fields plus a cosine similarity
// score. Identifiers leave here as plain strings so downstream JSON keeps
// them human-readable.
func (s *RecipeService) SearchByEmbedding(ctx context.Context, embedding pgvector.Vector, limit int) ([]types.RetrievedRecipe, error) {
	if limit <= 0 {
		limit = searchTopK
	}

	if s.db.Dialector.Name() == "postgres" {
		return s.searchANN(ctx, embedding, limit)
	}
	return s.searchExhaustive(ctx, embedding, limit)
}

func (s *RecipeService) searchANN(ctx context.Context, embedding pgvector.Vector, limit int) ([]types.RetrievedRecipe, error) {
	breadth := searchBreadth
	if breadth > maxHNSWEfSearch {
		breadth = maxHNSWEfSearch
	}

	var rows []searchRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SET LOCAL scopes the probe width to this transaction.
		if err := tx.Exec(fmt.Sprintf("SET LOCAL hnsw.ef_search = %d", breadth)).Error; err != nil {
			return err
		}
		return tx.Raw(
			`SELECT id, title, ingredients, instructions, 1 - (embedding <=> ?) AS score
			FROM recipes
			ORDER BY embedding <=> ?
			LIMIT ?`,
			embedding, embedding, limit,
		).Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return rowsToRetrieved(rows), nil
}

// searchExhaustive is the non-Postgres fallback: scan every row and rank by
// cosine similarity in process. Fine for test databases, unusable at corpus
// scale.
func (s *RecipeService) searchExhaustive(ctx context.Context, embedding pgvector.Vector, limit int) ([]types.RetrievedRecipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("corpus scan failed: %w", err)
	}

	query := embedding.Slice()
	rows := make([]searchRow, 0, len(recipes))
	for _, recipe := range recipes {
		score, ok := cosineSimilarity(query, recipe.Embedding.Slice())
		if !ok {
			continue
		}
		rows = append(rows, searchRow{
			ID:           recipe.ID,
			Title:        recipe.Title,
			Ingredients:  recipe.Ingredients,
			Instructions: recipe.Instructions,
			Score:        score,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rowsToRetrieved(rows), nil
}

func cosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

func rowsToRetrieved(rows []searchRow) []types.RetrievedRecipe {
	results := make([]types.RetrievedRecipe, 0, len(rows))
	for _, row := range rows {
		score := row.Score
		results = append(results, types.RetrievedRecipe{
			ID:           row.ID.String(),
			Title:        row.Title,
			Ingredients:  row.Ingredients,
			Instructions: row.Instructions,
			Score:        &score,
		})
	}
	return results
}

// GetRecipe retrieves a recipe by its string identifier. A malformed
// identifier is reported the same way as an unknown one.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	recipeID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrRecipeNotFound
	}

	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("recipe lookup failed: %w", err)
	}
	return &recipe, nil
}

// GetSummaries batch-fetches the card projection for the given identifiers.
// Unknown and malformed identifiers are simply absent from the result; order
// follows the request, with duplicates collapsed to the first occurrence.
func (s *RecipeService) GetSummaries(ctx context.Context, ids []string) ([]model.Recipe, error) {
	ordered := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	if len(ordered) == 0 {
		return []model.Recipe{}, nil
	}

	var found []model.Recipe
	if err := s.db.WithContext(ctx).
		Select("id", "title", "prep_time_minutes", "servings").
		Where("id IN ?", ordered).
		Find(&found).Error; err != nil {
		return nil, fmt.Errorf("summary lookup failed: %w", err)
	}

	byID := make(map[uuid.UUID]model.Recipe, len(found))
	for _, recipe := range found {
		byID[recipe.ID] = recipe
	}

	results := make([]model.Recipe, 0, len(found))
	for _, id := range ordered {
		if recipe, ok := byID[id]; ok {
			results = append(results, recipe)
		}
	}
	return results, nil
}

// CreateRecipe inserts a new corpus record.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("recipe insert failed: %w", err)
	}
	return recipe, nil
}
