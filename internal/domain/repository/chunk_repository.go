package repository

import (
	"context"

	"github.com/Adya-Prasad/Inferenz/internal/domain/entity"

	"github.com/pgvector/pgvector-go"
)

type ChunkRepository interface {
	CreateBatch(ctx context.Context, chunks []entity.DataChunk) error
	SearchNearest(ctx context.Context, embedding pgvector.Vector, topK int) ([]entity.SimilarChunk, error)
	DeleteByDatasourceID(ctx context.Context, datasourceID string) error
}
