package entity

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingDim is the fixed dimensionality of stored chunk embeddings.
const EmbeddingDim = 384

type ChunkMetadata struct {
	Source string `json:"source"` // "text", "ocr" or "pdf"
}

type DataChunk struct {
	ID           string           `db:"id" json:"id"`
	DatasourceID string           `db:"datasource_id" json:"datasourceId"`
	ChunkIndex   int              `db:"chunk_index" json:"chunkIndex"`
	ChunkText    string           `db:"chunk_text" json:"chunkText"`
	Embedding    *pgvector.Vector `db:"embedding" json:"-"`
	Metadata     []byte           `db:"metadata" json:"metadata"`
	CreatedAt    time.Time        `db:"created_at" json:"createdAt"`
}

type SimilarChunk struct {
	DataChunk
	Distance float64 `db:"distance" json:"distance"`
}
