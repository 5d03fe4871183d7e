package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadDocumentRequest is assembled by the controller from the multipart form.
type UploadDocumentRequest struct {
	CourseId     uuid.UUID `validate:"required"`
	OriginalName string    `validate:"required"`
	MimeType     string
	Data         []byte `validate:"required"`
}

type UploadDocumentResponse struct {
	Id                uuid.UUID `json:"id"`
	ChunksCreated     int       `json:"chunks_created"`
	EmbeddingsCreated int       `json:"embeddings_created"`
	Status            string    `json:"status"`
}

type DocumentResponse struct {
	Id           uuid.UUID `json:"id"`
	CourseId     uuid.UUID `json:"course_id"`
	UploadedBy   uuid.UUID `json:"uploaded_by"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	PassageCount int64     `json:"passage_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type PassageResponse struct {
	Id           uuid.UUID `json:"id"`
	ChunkIndex   int       `json:"chunk_index"`
	Text         string    `json:"text"`
	Keywords     []string  `json:"keywords"`
	HasEmbedding bool      `json:"has_embedding"`
}

// PublishEmbedPassagesMessage asks the backfill consumer to embed a document's
// passages that are still missing vectors.
type PublishEmbedPassagesMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
