package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Adya-Prasad/Inferenz/internal/domain/entity"
	"github.com/Adya-Prasad/Inferenz/internal/domain/repository"

	"github.com/pgvector/pgvector-go"
)

// ErrEmptyQuery is returned for empty or whitespace-only queries; the
// handler maps it to a client error and no embedding is computed.
var ErrEmptyQuery = errors.New("query must not be empty")

const maxTopK = 100

type QueryEmbeddingService interface {
	// EmbedQuery always yields a vector; the deterministic fallback covers
	// the case where no model is installed.
	EmbedQuery(ctx context.Context, text string) pgvector.Vector
}

type SearchUsecase struct {
	chunkRepo   repository.ChunkRepository
	embedder    QueryEmbeddingService
	defaultTopK int
}

func NewSearchUsecase(chunkRepo repository.ChunkRepository, embedder QueryEmbeddingService, defaultTopK int) *SearchUsecase {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &SearchUsecase{
		chunkRepo:   chunkRepo,
		embedder:    embedder,
		defaultTopK: defaultTopK,
	}
}

// Search embeds the query and returns the nearest stored chunks in
// ascending distance order, at most topK of them. Only chunks with a
// non-null embedding participate.
func (uc *SearchUsecase) Search(ctx context.Context, query string, topK int) ([]entity.SimilarChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	if topK <= 0 {
		topK = uc.defaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	embedding := uc.embedder.EmbedQuery(ctx, query)

	chunks, err := uc.chunkRepo.SearchNearest(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar chunks: %w", err)
	}

	return chunks, nil
}
