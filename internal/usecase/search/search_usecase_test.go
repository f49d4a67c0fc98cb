package search

import (
	"context"
	"testing"

	"github.com/Adya-Prasad/Inferenz/internal/domain/entity"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChunkRepo struct {
	results   []entity.SimilarChunk
	lastTopK  int
	callCount int
}

func (r *fakeChunkRepo) CreateBatch(_ context.Context, _ []entity.DataChunk) error { return nil }

func (r *fakeChunkRepo) SearchNearest(_ context.Context, _ pgvector.Vector, topK int) ([]entity.SimilarChunk, error) {
	r.callCount++
	r.lastTopK = topK
	if topK < len(r.results) {
		return r.results[:topK], nil
	}
	return r.results, nil
}

func (r *fakeChunkRepo) DeleteByDatasourceID(_ context.Context, _ string) error { return nil }

type countingEmbedder struct {
	calls int
}

func (e *countingEmbedder) EmbedQuery(_ context.Context, _ string) pgvector.Vector {
	e.calls++
	return pgvector.NewVector(make([]float32, entity.EmbeddingDim))
}

func similar(id, text string, distance float64) entity.SimilarChunk {
	return entity.SimilarChunk{
		DataChunk: entity.DataChunk{ID: id, DatasourceID: "ds-1", ChunkText: text},
		Distance:  distance,
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	repo := &fakeChunkRepo{}
	embedder := &countingEmbedder{}
	uc := NewSearchUsecase(repo, embedder, 5)

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := uc.Search(context.Background(), query, 5)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}

	// rejected before any embedding or persistence work
	assert.Zero(t, embedder.calls)
	assert.Zero(t, repo.callCount)
}

func TestSearchDefaultsAndCapsTopK(t *testing.T) {
	repo := &fakeChunkRepo{}
	uc := NewSearchUsecase(repo, &countingEmbedder{}, 5)

	_, err := uc.Search(context.Background(), "milk", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastTopK)

	_, err = uc.Search(context.Background(), "milk", 10000)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastTopK)
}

func TestSearchReturnsAtMostTopKAscending(t *testing.T) {
	repo := &fakeChunkRepo{results: []entity.SimilarChunk{
		similar("a", "closest", 0.01),
		similar("b", "near", 0.2),
		similar("c", "far", 0.9),
	}}
	uc := NewSearchUsecase(repo, &countingEmbedder{}, 5)

	results, err := uc.Search(context.Background(), "milk", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "closest", results[0].ChunkText)
	assert.LessOrEqual(t, results[0].Distance, results[1].Distance)
}

func TestSearchDoesNotPadResults(t *testing.T) {
	repo := &fakeChunkRepo{results: []entity.SimilarChunk{
		similar("a", "milk sale - 10 liters", 0.01),
	}}
	uc := NewSearchUsecase(repo, &countingEmbedder{}, 5)

	results, err := uc.Search(context.Background(), "milk", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "milk sale - 10 liters", results[0].ChunkText)
	assert.GreaterOrEqual(t, results[0].Distance, 0.0)
}
