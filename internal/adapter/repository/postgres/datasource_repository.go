package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Adya-Prasad/Inferenz/internal/domain/entity"
	"github.com/Adya-Prasad/Inferenz/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type datasourceRepository struct {
	db *sqlx.DB
}

func NewDatasourceRepository(db *sqlx.DB) repository.DatasourceRepository {
	return &datasourceRepository{db: db}
}

// create datasource
func (r *datasourceRepository) Create(ctx context.Context, ds *entity.Datasource) error {
	ds.ID = uuid.New().String()
	ds.CreatedAt = time.Now()
	ds.UpdatedAt = time.Now()

	query := `
		INSERT INTO datasources (id, file_name, storage_key, file_type, status, total_chunks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query, ds.ID, ds.FileName, ds.StorageKey, ds.FileType, ds.Status, ds.TotalChunks, ds.CreatedAt, ds.UpdatedAt)
	return err
}

// find datasource by id
func (r *datasourceRepository) FindByID(ctx context.Context, id string) (*entity.Datasource, error) {
	var ds entity.Datasource
	query := `SELECT * FROM datasources WHERE id = $1`
	err := r.db.GetContext(ctx, &ds, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

// list datasources
func (r *datasourceRepository) List(ctx context.Context, page, limit int) ([]entity.Datasource, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var datasources []entity.Datasource
	query := `SELECT * FROM datasources ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &datasources, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	query = `SELECT COUNT(*) FROM datasources`
	err = r.db.GetContext(ctx, &total, query)
	if err != nil {
		return nil, 0, err
	}

	return datasources, total, nil
}

// update status
func (r *datasourceRepository) UpdateStatus(ctx context.Context, id string, status entity.DatasourceStatus) error {
	query := `UPDATE datasources SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

// update total chunks
func (r *datasourceRepository) UpdateTotalChunks(ctx context.Context, id string, totalChunks int) error {
	query := `UPDATE datasources SET total_chunks = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, totalChunks, id)
	return err
}

// delete datasource
func (r *datasourceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM datasources WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
