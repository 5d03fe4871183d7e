package dto

import "github.com/google/uuid"

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k" validate:"gte=0"`
}

type SearchResult struct {
	PassageId  uuid.UUID `json:"passage_id"`
	ChunkIndex int       `json:"chunk_index"`
	Text       string    `json:"text"`
	Similarity float64   `json:"similarity"`
}

type SearchResponse struct {
	DocumentId uuid.UUID       `json:"document_id"`
	Query      string          `json:"query"`
	TopK       int             `json:"top_k"`
	Results    []*SearchResult `json:"results"`
}
