package postgres

import (
	"context"
	"time"

	"github.com/Adya-Prasad/Inferenz/internal/domain/entity"
	"github.com/Adya-Prasad/Inferenz/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

type chunkRepository struct {
	db *sqlx.DB
}

func NewChunkRepository(db *sqlx.DB) repository.ChunkRepository {
	return &chunkRepository{db: db}
}

// CreateBatch inserts all chunks of one pipeline run in a single transaction
// so readers never observe a partially ingested datasource.
func (r *chunkRepository) CreateBatch(ctx context.Context, chunks []entity.DataChunk) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO data_chunks (id, datasource_id, chunk_index, chunk_text, embedding, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for i := range chunks {
		chunks[i].ID = uuid.New().String()
		chunks[i].CreatedAt = time.Now()

		_, err := tx.ExecContext(ctx, query,
			chunks[i].ID,
			chunks[i].DatasourceID,
			chunks[i].ChunkIndex,
			chunks[i].ChunkText,
			chunks[i].Embedding,
			chunks[i].Metadata,
			chunks[i].CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SearchNearest ranks chunks by vector distance to the query embedding,
// closest first. Chunks without an embedding never match.
func (r *chunkRepository) SearchNearest(ctx context.Context, embedding pgvector.Vector, topK int) ([]entity.SimilarChunk, error) {
	query := `
		SELECT
			dc.id,
			dc.datasource_id,
			dc.chunk_index,
			dc.chunk_text,
			dc.metadata,
			dc.created_at,
			dc.embedding <-> $1 AS distance
		FROM data_chunks dc
		WHERE dc.embedding IS NOT NULL
		ORDER BY dc.embedding <-> $1 ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, embedding, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []entity.SimilarChunk
	for rows.Next() {
		var chunk entity.SimilarChunk
		err := rows.Scan(
			&chunk.ID,
			&chunk.DatasourceID,
			&chunk.ChunkIndex,
			&chunk.ChunkText,
			&chunk.Metadata,
			&chunk.CreatedAt,
			&chunk.Distance,
		)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// DeleteByDatasourceID deletes all chunks belonging to the datasource
func (r *chunkRepository) DeleteByDatasourceID(ctx context.Context, datasourceID string) error {
	query := `DELETE FROM data_chunks WHERE datasource_id = $1`
	_, err := r.db.ExecContext(ctx, query, datasourceID)
	return err
}
