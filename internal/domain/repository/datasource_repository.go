package repository

import (
	"context"

	"github.com/Adya-Prasad/Inferenz/internal/domain/entity"
)

type DatasourceRepository interface {
	Create(ctx context.Context, ds *entity.Datasource) error
	FindByID(ctx context.Context, id string) (*entity.Datasource, error)
	List(ctx context.Context, page, limit int) ([]entity.Datasource, int, error)
	UpdateStatus(ctx context.Context, id string, status entity.DatasourceStatus) error
	UpdateTotalChunks(ctx context.Context, id string, totalChunks int) error
	Delete(ctx context.Context, id string) error
}
