package dto

import "encoding/json"

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type SearchResult struct {
	ID           string          `json:"id"`
	DatasourceID string          `json:"datasource_id"`
	ChunkText    string          `json:"chunk_text"`
	Metadata     json.RawMessage `json:"metadata"`
	Distance     float64         `json:"distance"`
}
