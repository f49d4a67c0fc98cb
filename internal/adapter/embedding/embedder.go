package embedding

import (
	"context"
	"log"

	"github.com/pgvector/pgvector-go"
)

// ChunkEmbedder embeds chunk text during ingestion. Provider exhaustion
// yields nil so chunks are persisted with a null embedding instead of a
// low-quality substitute vector.
type ChunkEmbedder struct {
	providers []Provider
	dim       int
}

func NewChunkEmbedder(dim int, providers ...Provider) *ChunkEmbedder {
	return &ChunkEmbedder{providers: providers, dim: dim}
}

func (e *ChunkEmbedder) EmbedChunk(ctx context.Context, text string) *pgvector.Vector {
	vec := embedWithChain(ctx, e.providers, e.dim, text)
	if vec == nil {
		return nil
	}
	v := pgvector.NewVector(vec)
	return &v
}

// QueryEmbedder embeds search queries. The deterministic hash fallback is
// appended to the chain, so the result is never absent.
type QueryEmbedder struct {
	providers []Provider
	dim       int
}

func NewQueryEmbedder(dim int, providers ...Provider) *QueryEmbedder {
	chain := make([]Provider, 0, len(providers)+1)
	chain = append(chain, providers...)
	chain = append(chain, NewHashProvider(dim))
	return &QueryEmbedder{providers: chain, dim: dim}
}

func (e *QueryEmbedder) EmbedQuery(ctx context.Context, text string) pgvector.Vector {
	return pgvector.NewVector(embedWithChain(ctx, e.providers, e.dim, text))
}

func embedWithChain(ctx context.Context, providers []Provider, dim int, text string) []float32 {
	for _, p := range providers {
		vec, err := p.Embed(ctx, text)
		if err != nil {
			log.Printf("embedding provider %s failed: %v", p.Name(), err)
			continue
		}
		if len(vec) != dim {
			log.Printf("embedding provider %s returned %d dimensions, want %d", p.Name(), len(vec), dim)
			continue
		}
		return vec
	}
	return nil
}
