package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Adya-Prasad/Inferenz/internal/domain/entity"
	"github.com/Adya-Prasad/Inferenz/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ErrNotFound is returned when an operation targets a datasource that does
// not exist; the handler maps it to a 404.
var ErrNotFound = errors.New("datasource not found")

type EmbeddingService interface {
	// EmbedChunk returns nil when every provider fails; the chunk is then
	// persisted with a null embedding.
	EmbedChunk(ctx context.Context, text string) *pgvector.Vector
}

// TaskPool bounds CPU-heavy work (OCR, embedding inference) so pipeline runs
// cannot starve request handling.
type TaskPool interface {
	Submit(task func()) error
}

type DatasourceUsecase struct {
	dsRepo    repository.DatasourceRepository
	chunkRepo repository.ChunkRepository
	embedder  EmbeddingService
	extractor *TextExtractor
	chunker   *Chunker
	pool      TaskPool
}

func NewDatasourceUsecase(
	dsRepo repository.DatasourceRepository,
	chunkRepo repository.ChunkRepository,
	embedder EmbeddingService,
	extractor *TextExtractor,
	chunkSize int,
	pool TaskPool,
) *DatasourceUsecase {
	return &DatasourceUsecase{
		dsRepo:    dsRepo,
		chunkRepo: chunkRepo,
		embedder:  embedder,
		extractor: extractor,
		chunker:   NewChunker(chunkSize),
		pool:      pool,
	}
}

// Upload creates the datasource record at status uploaded and fires the
// processing pipeline in the background. The caller never waits on
// processing; progress is observable only through the record's status.
func (uc *DatasourceUsecase) Upload(
	ctx context.Context,
	fileName string,
	content []byte,
	contentType string,
) (*entity.Datasource, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ds := &entity.Datasource{
		FileName:   fileName,
		StorageKey: fmt.Sprintf("user_anonymous/%s/%s", uuid.New(), fileName),
		FileType:   contentType,
		Status:     entity.StatusUploaded,
	}

	if err := uc.dsRepo.Create(ctx, ds); err != nil {
		return nil, err
	}

	// detached run with its own context; the triggering request may be gone
	// before processing finishes
	go uc.Process(context.Background(), ds.ID, content, contentType)

	return ds, nil
}

// Process drives one ingestion run: extract, chunk, embed, persist.
// Status transitions: processing at start, then completed or failed. Errors
// after the record is loaded are never re-raised; the terminal failed status
// is the only failure signal, since the run is detached from any caller.
func (uc *DatasourceUsecase) Process(ctx context.Context, datasourceID string, content []byte, contentType string) {
	ds, err := uc.dsRepo.FindByID(ctx, datasourceID)
	if err != nil {
		log.Printf("failed to load datasource %s: %v", datasourceID, err)
		return
	}
	if ds == nil {
		log.Printf("datasource %s not found, skipping processing", datasourceID)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic while processing datasource %s: %v", datasourceID, r)
			uc.markFailed(datasourceID)
		}
	}()

	if err := uc.runPipeline(ctx, ds, content, contentType); err != nil {
		log.Printf("processing failed for datasource %s: %v", datasourceID, err)
		uc.markFailed(datasourceID)
	}
}

func (uc *DatasourceUsecase) runPipeline(ctx context.Context, ds *entity.Datasource, content []byte, contentType string) error {
	// persist processing immediately so concurrent reads observe the
	// in-flight run
	if err := uc.dsRepo.UpdateStatus(ctx, ds.ID, entity.StatusProcessing); err != nil {
		return fmt.Errorf("failed to mark datasource processing: %w", err)
	}

	var text, source string
	uc.runOnPool(func() {
		text, source = uc.extractor.Extract(ctx, content, contentType)
	})
	if text == "" {
		log.Printf("no text extracted for datasource %s", ds.ID)
	}

	pieces := uc.chunker.Split(text)

	metadata, _ := json.Marshal(entity.ChunkMetadata{Source: source})
	chunks := make([]entity.DataChunk, len(pieces))
	var wg sync.WaitGroup
	for i := range pieces {
		i := i
		chunks[i] = entity.DataChunk{
			DatasourceID: ds.ID,
			ChunkIndex:   i,
			ChunkText:    pieces[i],
			Metadata:     metadata,
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			chunks[i].Embedding = uc.embedder.EmbedChunk(ctx, pieces[i])
		}
		if err := uc.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	// a re-run for the same datasource replaces its chunks instead of
	// double-inserting them
	if err := uc.chunkRepo.DeleteByDatasourceID(ctx, ds.ID); err != nil {
		return fmt.Errorf("failed to clear previous chunks: %w", err)
	}

	if len(chunks) > 0 {
		if err := uc.chunkRepo.CreateBatch(ctx, chunks); err != nil {
			return fmt.Errorf("failed to save chunks: %w", err)
		}
	}

	if err := uc.dsRepo.UpdateTotalChunks(ctx, ds.ID, len(chunks)); err != nil {
		return err
	}
	if err := uc.dsRepo.UpdateStatus(ctx, ds.ID, entity.StatusCompleted); err != nil {
		return err
	}

	log.Printf("processing complete for datasource %s (chunks=%d)", ds.ID, len(chunks))
	return nil
}

// runOnPool executes task on the bounded pool and waits for it. A rejected
// submission falls back to running inline.
func (uc *DatasourceUsecase) runOnPool(task func()) {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		task()
	}
	if err := uc.pool.Submit(wrapped); err != nil {
		wrapped()
	}
	<-done
}

// markFailed uses a fresh context so the terminal status write cannot be
// lost to a canceled pipeline context.
func (uc *DatasourceUsecase) markFailed(datasourceID string) {
	if err := uc.dsRepo.UpdateStatus(context.Background(), datasourceID, entity.StatusFailed); err != nil {
		log.Printf("failed to mark datasource %s failed: %v", datasourceID, err)
	}
}

// list datasources
func (uc *DatasourceUsecase) List(ctx context.Context, page, limit int) ([]entity.Datasource, int, error) {
	return uc.dsRepo.List(ctx, page, limit)
}

// get datasource by id
func (uc *DatasourceUsecase) GetByID(ctx context.Context, id string) (*entity.Datasource, error) {
	return uc.dsRepo.FindByID(ctx, id)
}

// delete datasource and its chunks
func (uc *DatasourceUsecase) Delete(ctx context.Context, id string) error {
	ds, err := uc.dsRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ds == nil {
		return ErrNotFound
	}

	// Delete chunks first
	if err := uc.chunkRepo.DeleteByDatasourceID(ctx, id); err != nil {
		return err
	}

	return uc.dsRepo.Delete(ctx, id)
}
