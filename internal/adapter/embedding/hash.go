package embedding

import (
	"context"
	"crypto/sha256"
)

// HashProvider is a deterministic pseudo-embedding used as the last resort
// on the query path: the sha256 digest of the text, with each byte scaled to
// [0,1] and tiled to the configured dimension. Identical input always yields
// an identical vector. It never fails, so a query embedding is guaranteed
// even with no model installed.
type HashProvider struct {
	dim int
}

func NewHashProvider(dim int) *HashProvider {
	return &HashProvider{dim: dim}
}

func (p *HashProvider) Name() string {
	return "hash-fallback"
}

func (p *HashProvider) Embed(_ context.Context, text string) ([]float32, error) {
	sum := sha256.Sum256([]byte(text))
	vec := make([]float32, p.dim)
	for i := range vec {
		vec[i] = float32(sum[i%len(sum)]) / 255.0
	}
	return vec, nil
}
