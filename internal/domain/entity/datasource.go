package entity

import "time"

type DatasourceStatus string

const (
	StatusUploaded   DatasourceStatus = "uploaded"
	StatusProcessing DatasourceStatus = "processing"
	StatusCompleted  DatasourceStatus = "completed"
	StatusFailed     DatasourceStatus = "failed"
)

type Datasource struct {
	ID          string           `db:"id" json:"id"`
	FileName    string           `db:"file_name" json:"fileName"`
	StorageKey  string           `db:"storage_key" json:"storageKey"`
	FileType    string           `db:"file_type" json:"fileType"`
	Status      DatasourceStatus `db:"status" json:"status"`
	TotalChunks int              `db:"total_chunks" json:"totalChunks"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}
