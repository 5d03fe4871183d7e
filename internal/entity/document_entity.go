package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID
	CourseId     uuid.UUID
	UploadedBy   uuid.UUID
	OriginalName string
	FilePath     string
	MimeType     string
	SizeBytes    int64
	CreatedAt    time.Time
}

// Passage is one ordered chunk of a document's cleaned text.
// Embedding is nil until the embedding call for it has succeeded.
type Passage struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Content    string
	Keywords   []string
	Embedding  []byte
	CreatedAt  time.Time
}

func (p *Passage) HasEmbedding() bool {
	return len(p.Embedding) > 0
}
