package usecases

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/domain/repositories"
	"bazaar.backend/pkg/logger"
)

// Embedder turns text into a fixed-length float vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// SearchResultLimit caps the number of AI search hits returned.
const SearchResultLimit = 10

// SearchUsecase ranks approved listings against a free-text query by cosine
// similarity over stored embedding vectors.
type SearchUsecase struct {
	itemRepo repositories.ItemRepository
	embedder Embedder
}

// NewSearchUsecase creates a new search usecase
func NewSearchUsecase(itemRepo repositories.ItemRepository, embedder Embedder) *SearchUsecase {
	return &SearchUsecase{
		itemRepo: itemRepo,
		embedder: embedder,
	}
}

// Search embeds the query and returns the best-matching approved listings,
// highest similarity first. Candidates with mis-sized vectors are skipped.
func (u *SearchUsecase) Search(ctx context.Context, query string) ([]entities.RankedItem, error) {
	if query == "" {
		return nil, domainerrors.BadRequest("missing query")
	}

	queryVector, err := u.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates, err := u.itemRepo.ListApprovedWithEmbeddings(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]entities.RankedItem, 0, len(candidates))
	for _, item := range candidates {
		if len(item.Embedding) != len(queryVector) {
			continue
		}
		results = append(results, entities.RankedItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			Category:    item.Category,
			SubCategory: item.SubCategory,
			Score:       cosineSimilarity(queryVector, item.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > SearchResultLimit {
		results = results[:SearchResultLimit]
	}
	return results, nil
}

// BackfillEmbeddings computes vectors for listings whose stored vector is
// missing or mis-sized, returning how many were updated. A single listing
// failure aborts the run so the caller sees the upstream error.
func (u *SearchUsecase) BackfillEmbeddings(ctx context.Context) (int, error) {
	items, err := u.itemRepo.ListMissingEmbeddings(ctx, entities.EmbeddingDimensions)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, item := range items {
		vector, err := u.embedder.EmbedText(ctx, item.Name+" "+item.Description)
		if err != nil {
			return updated, err
		}
		if err := u.itemRepo.UpdateEmbedding(ctx, item.ID, vector); err != nil {
			return updated, err
		}
		updated++
		logger.Debug(ctx, "embedding backfilled", zap.String("item_id", item.ID.String()))
	}
	return updated, nil
}

// cosineSimilarity is dot(a,b) / (|a| * |b|); zero when either vector has no
// magnitude.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
