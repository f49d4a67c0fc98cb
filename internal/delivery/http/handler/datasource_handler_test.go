package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Adya-Prasad/Inferenz/internal/delivery/http/dto"
	"github.com/Adya-Prasad/Inferenz/internal/domain/entity"
	"github.com/Adya-Prasad/Inferenz/internal/usecase/datasource"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDatasourceRepo struct {
	mu          sync.Mutex
	datasources map[string]entity.Datasource
}

func newFakeDatasourceRepo() *fakeDatasourceRepo {
	return &fakeDatasourceRepo{datasources: make(map[string]entity.Datasource)}
}

func (r *fakeDatasourceRepo) Create(_ context.Context, ds *entity.Datasource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ds.ID = uuid.New().String()
	ds.CreatedAt = time.Now()
	ds.UpdatedAt = time.Now()
	r.datasources[ds.ID] = *ds
	return nil
}

func (r *fakeDatasourceRepo) FindByID(_ context.Context, id string) (*entity.Datasource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ds, ok := r.datasources[id]
	if !ok {
		return nil, nil
	}
	return &ds, nil
}

func (r *fakeDatasourceRepo) List(_ context.Context, _, _ int) ([]entity.Datasource, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []entity.Datasource
	for _, ds := range r.datasources {
		all = append(all, ds)
	}
	return all, len(all), nil
}

func (r *fakeDatasourceRepo) UpdateStatus(_ context.Context, id string, status entity.DatasourceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ds, ok := r.datasources[id]
	if ok {
		ds.Status = status
		r.datasources[id] = ds
	}
	return nil
}

func (r *fakeDatasourceRepo) UpdateTotalChunks(_ context.Context, id string, totalChunks int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ds, ok := r.datasources[id]
	if ok {
		ds.TotalChunks = totalChunks
		r.datasources[id] = ds
	}
	return nil
}

func (r *fakeDatasourceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.datasources, id)
	return nil
}

type nilChunkEmbedder struct{}

func (nilChunkEmbedder) EmbedChunk(_ context.Context, _ string) *pgvector.Vector { return nil }

type inlinePool struct{}

func (inlinePool) Submit(task func()) error {
	task()
	return nil
}

func newDatasourceApp(dsRepo *fakeDatasourceRepo) *fiber.App {
	uc := datasource.NewDatasourceUsecase(
		dsRepo,
		&fakeChunkRepo{},
		nilChunkEmbedder{},
		datasource.NewTextExtractor(nil),
		500,
		inlinePool{},
	)
	h := NewDatasourceHandler(uc)

	app := fiber.New()
	app.Get("/api/v1/datasources", h.List)
	app.Delete("/api/v1/datasources/:id", h.Delete)
	return app
}

func TestListEndpointClampsZeroPagination(t *testing.T) {
	app := newDatasourceApp(newFakeDatasourceRepo())

	// limit=0 and page=0 parse cleanly; they must be clamped, not divided by
	req := httptest.NewRequest("GET", "/api/v1/datasources?page=0&limit=0", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out dto.ListDatasourcesResponse
	require.NoError(t, json.Unmarshal(payload, &out))
	assert.Equal(t, 1, out.Meta.Page)
	assert.Equal(t, 10, out.Meta.Limit)
}

func TestListEndpointEmptyTableYieldsEmptyData(t *testing.T) {
	app := newDatasourceApp(newFakeDatasourceRepo())

	req := httptest.NewRequest("GET", "/api/v1/datasources", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"data":[]`)
}

func TestDeleteEndpointMissingDatasourceIs404(t *testing.T) {
	app := newDatasourceApp(newFakeDatasourceRepo())

	req := httptest.NewRequest("DELETE", "/api/v1/datasources/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
