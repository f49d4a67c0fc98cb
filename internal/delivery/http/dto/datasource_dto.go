package dto

import "time"

type UploadDatasourceResponse struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type DatasourceInfo struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	StorageKey  string    `json:"storage_key"`
	FileType    string    `json:"file_type"`
	Status      string    `json:"status"`
	TotalChunks int       `json:"total_chunks"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListDatasourcesResponse struct {
	Data []DatasourceInfo `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

type PaginationMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
